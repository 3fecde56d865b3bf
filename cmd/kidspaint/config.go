package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/kidspaint/internal/config"
)

type configCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r.subcommand("config"), fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		fmt.Fprint(c.out, c.config.String())
		return nil
	case "path":
		fmt.Fprintln(c.out, c.savePath())
		return nil
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

// savePath is the override, the file the loader read from, or the
// default location.
func (c *configCmd) savePath() string {
	if configPathOverride != "" {
		return configPathOverride
	}
	if path := config.NewLoader(version, configPathOverride).GetConfigPath(); path != "" {
		return path
	}
	return filepath.Join(config.DefaultDir(), "config.rc")
}

func (c *configCmd) runSave() error {
	path := c.savePath()
	if err := config.Save(path, c.config); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "configuration saved to %s\n", path)
	return nil
}
