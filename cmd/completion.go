package cmd

import (
	"flag"

	"github.com/etnz/wrapped/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// fileFlags are the flags that take a path.
var fileFlags = map[string]bool{"trades": true, "banking": true, "db": true}

// choiceFlags are the flags that take one of a few values.
var choiceFlags = map[string]predict.Set{
	"period":    {"daily", "weekly", "monthly", "quarterly", "yearly"},
	"log-level": {"debug", "info", "warn", "error"},
}

// Completion returns the shell completion of the application: its
// subcommands, their flags, and the global flags of global.
func Completion(global *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, commands := range Commands() {
		for _, cmd := range commands {
			fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
			cmd.SetFlags(fs)
			sub := &complete.Command{Flags: flagPredictors(fs)}
			if cmd.Name() == "topic" {
				if topics, err := docs.GetAllTopics(); err == nil {
					sub.Args = predict.Set(topics)
				}
			}
			c.Sub[cmd.Name()] = sub
		}
	}
	return c
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	predictors := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case fileFlags[f.Name]:
			predictors[f.Name] = predict.Files("*")
		case choiceFlags[f.Name] != nil:
			predictors[f.Name] = choiceFlags[f.Name]
		case isBool(f):
			predictors[f.Name] = predict.Nothing
		default:
			predictors[f.Name] = predict.Something
		}
	})
	return predictors
}

// isBool reports whether f is a boolean flag, that takes no value.
func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
