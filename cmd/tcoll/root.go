package main

import (
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/tcoll/endian"
)

const flagVerbose = "verbose"

// app carries the state shared by the subcommands of one invocation.
type app struct {
	log  *logrus.Logger
	src  layoutFlags
	root *cobra.Command
}

func newRootCmd() *cobra.Command {
	a := &app{
		log: logrus.New(),
		src: layoutFlags{},
	}

	a.root = &cobra.Command{
		Use:           "tcoll",
		Short:         "typed collection buffer tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.log.SetOutput(cmd.ErrOrStderr())
			a.log.SetLevel(logrus.WarnLevel)
			if v, _ := cmd.Flags().GetBool(flagVerbose); v {
				a.log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	a.root.PersistentFlags().BoolP(flagVerbose, "v", false, "log each step to stderr")
	a.src.register(a.root.PersistentFlags(), "")

	a.root.AddCommand(
		a.newParseCmd(),
		a.newFormatCmd(),
		a.newInspectCmd(),
		a.newTranscodeCmd(),
	)

	return a.root
}

// sourceLayout opens the layout described by the global flags.
func (a *app) sourceLayout(cmd *cobra.Command) (layout, error) {
	p, err := a.src.resolve(cmd.Flags())
	if err != nil {
		return nil, err
	}
	l, err := p.open(0)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{
		"kind":   l.Kind(),
		"params": l.Params().String(),
		"native": endian.IsNative(l.Params().Engine),
	}).Debug("opened layout")

	return l, nil
}

// readBuffer reads a collection buffer from path. With hexInput the file
// holds hex text, whitespace ignored.
func (a *app) readBuffer(path string, hexInput bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if hexInput {
		data, err = hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
		if err != nil {
			return nil, errors.Wrapf(err, "decode hex %s", path)
		}
	}
	a.log.WithFields(logrus.Fields{"path": path, "bytes": len(data)}).Debug("read buffer")

	return data, nil
}

// writeBuffer writes buf to path, or as hex to w when path is empty.
func (a *app) writeBuffer(w io.Writer, path string, buf []byte) error {
	if path == "" {
		_, err := io.WriteString(w, hex.EncodeToString(buf)+"\n")
		return err
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil { //nolint:gosec
		return errors.Wrapf(err, "write %s", path)
	}
	a.log.WithFields(logrus.Fields{"path": path, "bytes": len(buf)}).Debug("wrote buffer")

	return nil
}
