package main

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ArturSalamatin/convolution/regime"
)

// NewRunCommand builds the "run" subcommand: a fixed-length ConstStep well
// simulation over randomly generated coefficients, useful as a smoke test
// and as a worked example of the push/advance/convolve calling convention.
func NewRunCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a demo ConstStep well simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(v)
		},
	}

	flags := cmd.Flags()
	flags.Int("grid-nodes", 8, "number of spatial grid nodes (G)")
	flags.Uint64("spatial-size", 4, "well segment count (S)")
	flags.Uint64("frame-temporal-size", 16, "history slabs retained at the external boundary")
	flags.Uint64("temporal-size", 16, "history slabs allocated for flux")
	flags.Int("steps", 10, "number of simulation steps to run")
	flags.Float64("ht", 1.0, "time step size")
	flags.String("metrics-addr", "", "address to serve prometheus metrics on, empty disables it")

	_ = v.BindPFlags(flags)
	return cmd
}

func runSimulation(v *viper.Viper) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	registry := prometheus.NewRegistry()
	m := newMetrics(registry)

	if addr := v.GetString("metrics-addr"); addr != "" {
		go serveMetrics(logger, addr, registry)
	}

	gridNodes := v.GetInt("grid-nodes")
	spatialSize := v.GetUint64("spatial-size")
	frameTemporalSize := v.GetUint64("frame-temporal-size")
	temporalSize := v.GetUint64("temporal-size")
	steps := v.GetInt("steps")
	ht := v.GetFloat64("ht")

	well := regime.NewConstStepWell(gridNodes, spatialSize, frameTemporalSize, temporalSize, ht)

	logger.Info("starting simulation",
		zap.Int("grid_nodes", gridNodes),
		zap.Uint64("spatial_size", spatialSize),
		zap.Uint64("frame_temporal_size", frameTemporalSize),
		zap.Uint64("temporal_size", temporalSize),
		zap.Int("steps", steps),
	)

	rng := rand.New(rand.NewSource(1))

	for step := 0; step < steps; step++ {
		for row := 0; row < gridNodes; row++ {
			for col := 0; col < int(spatialSize); col++ {
				well.Kernel.PushCoef(row, col, rng.Float64(), 1.0)
				m.pushesTotal.Inc()
			}
		}
		well.Kernel.Advance()
		well.Time.SetInterval()

		qzi := make([]float64, spatialSize)
		perm := make([]float64, spatialSize)
		for i := range qzi {
			qzi[i] = rng.Float64()
			perm[i] = 1.0
		}
		well.Flux.PushWell(qzi, perm)
		m.pushesTotal.Inc()

		start := time.Now()
		result := well.Convolve()
		m.convolveDuration.Observe(time.Since(start).Seconds())
		m.stepsTotal.Inc()

		logger.Info("step complete",
			zap.Int("step", step),
			zap.Float64("current_time", well.Time.CurrentTime),
			zap.Int("result_len", result.Len()),
		)
	}

	logger.Info("simulation finished", zap.Int("steps", steps))
	return nil
}

func serveMetrics(logger *zap.Logger, addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
