// SPDX-License-Identifier: MIT

package commands

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/varbox/calc"
	"github.com/katalvlaran/varbox/config"
	"github.com/katalvlaran/varbox/eigen"
	"github.com/katalvlaran/varbox/logger"
	"github.com/katalvlaran/varbox/report"
)

// flagKeys maps each solve flag to its config key.
var flagKeys = map[string]string{
	"basis":        config.KeyBasis,
	"length":       config.KeyLength,
	"mass":         config.KeyMass,
	"slope":        config.KeySlope,
	"print-arrays": config.KeyPrintArrays,
	"timings":      config.KeyTimings,
	"solver":       config.KeySolver,
	"states":       config.KeyStates,
	"plot":         config.KeyPlot,
	"json-log":     config.KeyLogJSON,
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Build and diagonalize the Hamiltonian",
		Long: `Build T, V and H = T + V in the basis of the first N box eigenfunctions,
diagonalize H and report the lowest levels and the ground state energy.

Exit codes: 2 invalid parameter, 3 dimension mismatch, 4 diagonalization
failed, 1 any other error.`,
		Args: cobra.NoArgs,
		RunE: runSolve,
	}

	d := config.Default()
	f := cmd.Flags()
	f.IntP("basis", "n", d.Basis, "number of basis functions N")
	f.Float64P("length", "L", d.Length, "box length L")
	f.Float64P("mass", "m", d.Mass, "particle mass")
	f.Float64P("slope", "b", d.Slope, "potential slope b")
	f.Bool("print-arrays", d.PrintArrays, "print T, V and H")
	f.String("solver", d.Solver, "eigensolver backend ("+strings.Join(eigen.Names(), ", ")+")")
	f.Int("states", d.States, "number of levels to report and plot")
	f.String("plot", d.Plot, "write a probability density plot (.png, .svg, .pdf)")
	f.Bool("json-log", d.LogJSON, "emit structured JSON logs")
	f.Bool("timings", d.Timings, "print stage timings")

	return cmd
}

// loadConfig layers defaults, the config file, the environment and the
// flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath(cmd)
	v, err := config.NewViper(path)
	if err != nil {
		return nil, errors.WithHint(err, "check the --config path, or run 'varbox config init' to create one")
	}
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	return cfg, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", name)
		}
	}

	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.LogJSON {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(true, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
	}
	log := logger.Logger.Named("solve")

	if err := cfg.Validate(); err != nil {
		return errors.WithHint(
			errors.Wrap(err, "invalid configuration"),
			"basis must be at least 1, length and mass must be positive, states non-negative, "+
				"solver one of "+strings.Join(eigen.Names(), ", "))
	}
	solver, err := eigen.New(cfg.Solver)
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	log.Debug("configuration loaded",
		zap.Stringer("params", cfg.Params()),
		zap.String("solver", solver.Name()),
		zap.String("config", configPath(cmd)))

	res, err := calc.Run(cfg.Params(), solver, calc.WithLogger(log))
	if err != nil {
		wrapped := errors.Wrap(err, "calculation failed")
		if errors.Is(err, eigen.ErrDiagonalizationFailed) && solver.Name() != eigen.NameJacobi {
			wrapped = errors.WithHint(wrapped, "retry with --solver jacobi")
		}
		return wrapped
	}

	r := report.New(cmd.OutOrStdout())
	if err := r.Report(res, report.Options{
		PrintArrays: cfg.PrintArrays,
		States:      cfg.ReportedStates(),
		Timings:     cfg.Timings,
	}); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	if cfg.Plot != "" {
		if err := report.PlotDensities(res, cfg.ReportedStates(), cfg.Plot); err != nil {
			return errors.WithHint(errors.Wrapf(err, "failed to write plot %s", cfg.Plot),
				"use a .png, .svg or .pdf file name")
		}
		log.Info("plot written", zap.String("path", cfg.Plot))
	}

	return nil
}
