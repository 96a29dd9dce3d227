// Command chaindemo drives a chainhash.Table through a scripted sequence of
// insert/search/delete operations and prints the results.
//
// Without flags it runs a built-in walkthrough; --script runs an operation
// list loaded from a TOML file, e.g.:
//
//	capacity = 8
//	load_factor_max = 0.75
//
//	[[op]]
//	action = "insert"
//	key = 101
//	value = "Alice"
//
//	[[op]]
//	action = "search"
//	skey = "alice"
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theflywheel/chainhash"
)

// op is a single scripted table operation. Keys are given either directly
// (key) or as a string identifier (skey) hashed with chainhash.StringKey;
// skey wins when both are set.
type op struct {
	Action string `toml:"action"`
	Key    int64  `toml:"key"`
	SKey   string `toml:"skey"`
	Value  string `toml:"value"`
}

// script is the TOML document accepted by --script. Capacity and
// load_factor_max are optional and fall back to the command-line flags.
type script struct {
	Capacity      int     `toml:"capacity"`
	LoadFactorMax float64 `toml:"load_factor_max"`
	Ops           []op    `toml:"op"`
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	var capacity int
	var loadFactor float64
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "chaindemo",
		Short: "Run a scripted sequence of hash table operations",
		Long: "Chaindemo constructs a chained hash table and performs a sequence of\n" +
			"insert/search/delete calls against it, printing each result. The\n" +
			"sequence is either a built-in walkthrough or a TOML script.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags provide the defaults; a script may override capacity
			// and threshold and supplies its own op list.
			s := script{
				Capacity:      capacity,
				LoadFactorMax: loadFactor,
			}
			if scriptPath == "" {
				s.Ops = builtinOps()
			} else {
				if _, err := toml.DecodeFile(scriptPath, &s); err != nil {
					return fmt.Errorf("failed to load script %s: %w", scriptPath, err)
				}
				logger.Info("loaded script",
					zap.String("path", scriptPath),
					zap.Int("ops", len(s.Ops)))
			}
			return runScript(logger, s)
		},
	}

	cmd.Flags().IntVar(
		&capacity, "capacity", 8,
		"Initial table capacity, rounded up to a power of two")
	cmd.Flags().Float64Var(
		&loadFactor, "load-factor", chainhash.DefaultLoadFactorMax,
		"Load factor threshold that triggers growth")
	cmd.Flags().StringVar(
		&scriptPath, "script", "",
		"TOML file with the operation sequence to run")

	return cmd
}

// builtinOps is the default walkthrough used when no script is given.
func builtinOps() []op {
	return []op{
		{Action: "insert", Key: 101, Value: "Alice"},
		{Action: "insert", Key: 202, Value: "Bob"},
		{Action: "insert", Key: 303, Value: "Charlie"},
		{Action: "stats"},
		{Action: "search", Key: 202},
		{Action: "search", Key: 999},
		{Action: "insert", Key: 202, Value: "Bob Updated"},
		{Action: "search", Key: 202},
		{Action: "delete", Key: 101},
		{Action: "search", Key: 101},
		{Action: "stats"},
	}
}

func runScript(logger *zap.Logger, s script) error {
	ht, err := chainhash.New[string](s.Capacity, s.LoadFactorMax)
	if err != nil {
		return err
	}
	logger.Info("table created",
		zap.Int("capacity", ht.Capacity()),
		zap.Float64("load_factor_max", s.LoadFactorMax))

	for i, o := range s.Ops {
		key := o.Key
		label := fmt.Sprintf("%d", o.Key)
		if o.SKey != "" {
			key = chainhash.StringKey(o.SKey)
			label = o.SKey
		}

		switch o.Action {
		case "insert":
			ht.Insert(key, o.Value)
			fmt.Printf("insert %s => %q\n", label, o.Value)
		case "search":
			if v, ok := ht.Search(key); ok {
				fmt.Printf("search %s => %q\n", label, v)
			} else {
				fmt.Printf("search %s => not found\n", label)
			}
		case "delete":
			fmt.Printf("delete %s => %v\n", label, ht.Delete(key))
		case "stats":
			st := ht.Stats()
			fmt.Printf("size=%d capacity=%d load_factor=%.3f growths=%d max_chain=%d\n",
				st.Entries, st.Buckets, st.LoadFactor, st.Growths, st.MaxChain)
		default:
			return fmt.Errorf("op %d: unknown action %q", i, o.Action)
		}
	}

	st := ht.Stats()
	logger.Info("script finished",
		zap.Int("ops", len(s.Ops)),
		zap.Int("entries", st.Entries),
		zap.Int("buckets", st.Buckets),
		zap.Uint32("growths", st.Growths))
	return nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("demo failed", zap.Error(err))
		os.Exit(1)
	}
}
