package model

import (
	"context"
	"log/slog"
	"math/rand/v2"
)

type sparseWeight struct {
	index uint32
	value float64
}

// fit trains a linear hinge-loss SVM with Pegasos-style stochastic
// sub-gradient steps. Every active feature has value 1. The regularization
// shrink is kept as a running scale on w and folded back in whenever it
// drops below 0.1 at the end of an epoch.
func fit(ctx context.Context, examples []example, cfg TrainConfig, log *slog.Logger) ([]sparseWeight, error) {
	dim := 0
	for _, ex := range examples {
		if k := len(ex.feats); k > 0 {
			dim = max(dim, int(ex.feats[k-1])+1)
		}
	}
	if dim == 0 {
		log.Warn("no features survived the frequency floor")
		return nil, nil
	}

	const eta0 = 1.0
	var (
		w      = make([]float64, dim)
		perm   = make([]int, len(examples))
		rng    = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
		lambda = cfg.Lambda
		t      float64
		scale  = 1.0
	)
	for i := range perm {
		perm[i] = i
	}

	for epoch := range cfg.Epochs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if cfg.Shuffle {
			rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		}

		violations := 0
		for _, i := range perm {
			eta := eta0 / (1 + lambda*eta0*t)
			t++
			ex := &examples[i]

			scale *= 1 - eta*lambda*0.01
			dot := 0.0
			for _, f := range ex.feats {
				dot += w[f]
			}
			if dot*scale*ex.label >= 1 {
				continue
			}

			violations++
			step := ex.label * eta / scale
			for _, f := range ex.feats {
				w[f] += step
			}
		}

		if scale < 0.1 {
			for i := range w {
				w[i] *= scale
			}
			scale = 1
		}
		log.Debug("training epoch", "epoch", epoch+1, "violations", violations, "scale", scale)
	}

	var out []sparseWeight
	for i, v := range w {
		if v *= scale; v != 0 {
			out = append(out, sparseWeight{index: uint32(i), value: v})
		}
	}
	return out, nil
}
