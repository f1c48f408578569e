package config

import (
	"strconv"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// countValue is a pflag.Value that only accepts counts in [MinCount, MaxCount],
// so bad input is rejected while flags are parsed.
type countValue struct {
	name  string
	value *int
}

func (c *countValue) String() string { return strconv.Itoa(*c.value) }
func (c *countValue) Type() string   { return "int" }

func (c *countValue) Set(s string) error {
	v, err := ParseCount(c.name, s)
	if err != nil {
		return err
	}
	*c.value = v
	return nil
}

// CountVarP defines a range-checked count flag.
func CountVarP(fs *pflag.FlagSet, p *int, name, shorthand string, value int, usage string) {
	*p = value
	fs.VarP(&countValue{name: name, value: p}, name, shorthand, usage)
}

// RegisterFlags defines the search flags on fs and binds them to v.
func RegisterFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	d := Default()
	var zeros, find int
	CountVarP(fs, &zeros, KeyZeros, "N", d.ZeroCount, "number of trailing zero hex digits the digest must end with (1-10)")
	CountVarP(fs, &find, KeyFind, "F", d.TargetCount, "number of matching candidates to find (1-10)")
	fs.IntP(KeyWorkers, "w", d.Workers, "worker goroutines (0 = one per CPU core)")
	fs.Uint64(KeyStart, d.Start, "first candidate to try")
	fs.StringP(KeyAlgorithm, "a", d.Algorithm, "digest algorithm: sha256, sha3-256, keccak256, blake2b-256, blake3, sha256d, hash160")
	fs.StringP(KeyOutput, "o", d.Output, "write a result report to this file")
	fs.Bool(KeyProgress, d.Progress, "show live progress on stderr")
	fs.Bool("high-priority", d.HighPriority, "raise the process scheduling priority")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")

	binds := map[string]string{
		KeyZeros:        KeyZeros,
		KeyFind:         KeyFind,
		KeyWorkers:      KeyWorkers,
		KeyStart:        KeyStart,
		KeyAlgorithm:    KeyAlgorithm,
		KeyOutput:       KeyOutput,
		KeyProgress:     KeyProgress,
		KeyHighPriority: "high-priority",
		KeyLogLevel:     "log-level",
	}
	for key, flag := range binds {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}
