// orafm-compile builds engine-loadable synthdef files from YAML
// generator specs.
package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	orafm "github.com/kylecombs/ORA-FM-sub001"
	"github.com/kylecombs/ORA-FM-sub001/sc"
	"github.com/kylecombs/ORA-FM-sub001/scformat"
	"github.com/kylecombs/ORA-FM-sub001/version"
)

var (
	outDir  string
	listing bool
	send    string
)

var rootCmd = &cobra.Command{
	Use:   "orafm-compile [flags] spec.yml...",
	Short: "Compile generator specs into engine-loadable synthdef files",
	Long: `orafm-compile reads one or more YAML generator specs, assembles the
unit-generator graph for each and serializes it into the binary synthdef
format. By default every spec produces <name>` + scformat.Extension + ` in the
output directory; --listing prints a readable graph dump instead, and
--send loads the compiled definitions straight into a running engine.`,
	Version:       version.VersionOrHash,
	Args:          cobra.MinimumNArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.Flags().StringVarP(&outDir, "output", "o", ".", "directory for the compiled files")
	rootCmd.Flags().BoolVarP(&listing, "listing", "l", false, "print a readable graph listing instead of writing files")
	rootCmd.Flags().StringVar(&send, "send", "", "host:port of a running engine to load the definitions into")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var client *sc.Client
	if send != "" {
		host, portStr, err := net.SplitHostPort(send)
		if err != nil {
			return fmt.Errorf("invalid --send address %q: %w", send, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid --send port %q: %w", portStr, err)
		}
		client = sc.NewClient(host, port)
	}
	for _, path := range args {
		if err := compile(cmd, path, client); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func compile(cmd *cobra.Command, path string, client *sc.Client) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var spec orafm.GenSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("parsing spec: %w", err)
	}
	def, err := orafm.BuildSynthDef(spec)
	if err != nil {
		return err
	}
	if listing {
		s, err := def.Listing()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), s)
	}
	buf, err := scformat.Encode(def)
	if err != nil {
		return err
	}
	if client != nil {
		if err := client.SendDef(buf); err != nil {
			return fmt.Errorf("loading into engine: %w", err)
		}
	}
	if listing {
		return nil
	}
	out := filepath.Join(outDir, def.Name()+scformat.Extension)
	if err := writeFile(out, buf); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(buf))
	return nil
}

// writeFile keeps the file handle scoped to this call and reports close
// errors, so a full disk is not mistaken for a successful build.
func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(data)
	return err
}
