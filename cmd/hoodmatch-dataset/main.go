// hoodmatch-dataset validates a neighborhood dataset and converts it between
// YAML and Parquet. Without -in it exports the built-in dataset.
//
//	hoodmatch-dataset -out neighborhoods.parquet
//	hoodmatch-dataset -in custom.yaml -out custom.parquet
//	hoodmatch-dataset -in custom.parquet            # validate only
package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/hoodmatch/internal/logger"
	nbrepo "github.com/kailas-cloud/hoodmatch/internal/repository/neighborhood"
)

func main() {
	logger, err := logpkg.NewLogger("local", "info")
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	code := run(os.Args[1:], logger)
	_ = logger.Sync()
	os.Exit(code)
}

// run executes the tool and returns the process exit code.
func run(args []string, logger *zap.Logger) int {
	fs := flag.NewFlagSet("hoodmatch-dataset", flag.ContinueOnError)
	in := fs.String("in", "", "input dataset (.yaml or .parquet); empty uses the built-in dataset")
	out := fs.String("out", "", "output Parquet file; empty only validates")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var (
		repo *nbrepo.Repo
		err  error
	)
	if *in == "" {
		repo, err = nbrepo.Default()
	} else {
		repo, err = nbrepo.LoadFile(*in)
	}
	if err != nil {
		logger.Error("Dataset is invalid", zap.String("in", *in), zap.Error(err))
		return 1
	}
	logger.Info("Dataset is valid", zap.String("in", *in), zap.Int("neighborhoods", repo.Len()))

	if *out == "" {
		return 0
	}
	if err := nbrepo.WriteParquet(*out, repo); err != nil {
		logger.Error("Export failed", zap.String("out", *out), zap.Error(err))
		return 1
	}
	logger.Info("Dataset exported", zap.String("out", *out))
	return 0
}
