package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) newParseCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "parse [literal]",
		Short: "encode a literal list such as {1, NULL, 3}",
		Long: `
Encode a literal list into a collection buffer. The literal is read from the
argument, or from stdin when no argument is given. The buffer is written to
--out, or printed as hex.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.sourceLayout(cmd)
			if err != nil {
				return err
			}

			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "read stdin")
				}
				text = string(data)
			}

			buf, err := l.Parse(text)
			if err != nil {
				return err
			}

			return a.writeBuffer(cmd.OutOrStdout(), out, buf)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; hex to stdout when empty")

	return cmd
}

func (a *app) newFormatCmd() *cobra.Command {
	var hexInput bool

	cmd := &cobra.Command{
		Use:   "format <files>",
		Short: "print collection buffers as literal lists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.sourceLayout(cmd)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			for _, path := range args {
				buf, err := a.readBuffer(path, hexInput)
				if err != nil {
					return err
				}
				text, err := l.Format(buf)
				if err != nil {
					return errors.Wrapf(err, "%s", path)
				}
				fmt.Fprintln(stdout, text)
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&hexInput, "hex", false, "input files hold hex text")

	return cmd
}

func (a *app) newInspectCmd() *cobra.Command {
	var hexInput bool

	cmd := &cobra.Command{
		Use:   "inspect <files>",
		Short: "print the layout statistics of collection buffers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.sourceLayout(cmd)
			if err != nil {
				return err
			}

			tbl := tablewriter.NewWriter(cmd.OutOrStdout())
			tbl.SetHeader([]string{"File", "Count", "Nulls", "Header", "Presence", "Values", "Slack", "Digest"})
			for _, path := range args {
				buf, err := a.readBuffer(path, hexInput)
				if err != nil {
					return err
				}
				st, err := l.Stats(buf)
				if err != nil {
					return errors.Wrapf(err, "%s", path)
				}
				digest, err := l.Digest(buf)
				if err != nil {
					return errors.Wrapf(err, "%s", path)
				}
				tbl.Append([]string{
					path,
					strconv.Itoa(st.Count),
					strconv.Itoa(st.NullCount),
					strconv.Itoa(st.HeaderBytes),
					strconv.Itoa(st.PresenceBytes),
					strconv.Itoa(st.ValueBytes),
					strconv.Itoa(st.SlackBytes),
					fmt.Sprintf("%016x", digest),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", l.Kind(), l.Params())
			tbl.Render()

			return nil
		},
	}
	cmd.Flags().BoolVar(&hexInput, "hex", false, "input files hold hex text")

	return cmd
}

func (a *app) newTranscodeCmd() *cobra.Command {
	var (
		hexInput bool
		compact  bool
		dst      = layoutFlags{prefix: "to-"}
	)

	cmd := &cobra.Command{
		Use:   "transcode <in> [out]",
		Short: "re-encode a collection buffer under other layout parameters",
		Long: `
Re-encode a collection buffer under the layout given by the --to-* flags.
Unset --to-* flags take their defaults, not the source values. The element
kind carries over; naming a different one with --to-kind fails. With
--compact-only the buffer is rewritten under its own parameters, dropping
any slack.
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.sourceLayout(cmd)
			if err != nil {
				return err
			}
			buf, err := a.readBuffer(args[0], hexInput)
			if err != nil {
				return err
			}

			var out []byte
			if compact {
				out, err = src.Compact(buf)
				if err != nil {
					return err
				}
			} else {
				p, err := dst.resolve(cmd.Flags())
				if err != nil {
					return err
				}
				to, err := p.open(src.Kind())
				if err != nil {
					return err
				}
				out, err = src.TranscodeTo(to, buf)
				if err != nil {
					return err
				}
				if err := verifyDigest(src, buf, to, out); err != nil {
					return err
				}
				a.log.WithFields(logrus.Fields{
					"from": src.Params().String(),
					"to":   to.Params().String(),
				}).Debug("transcoded")
			}

			var path string
			if len(args) == 2 {
				path = args[1]
			}

			return a.writeBuffer(cmd.OutOrStdout(), path, out)
		},
	}
	cmd.Flags().BoolVar(&hexInput, "hex", false, "input file holds hex text")
	cmd.Flags().BoolVar(&compact, "compact-only", false, "rewrite under the source parameters")
	dst.register(cmd.Flags(), " (destination)")

	return cmd
}

func verifyDigest(src layout, srcBuf []byte, dst layout, dstBuf []byte) error {
	want, err := src.Digest(srcBuf)
	if err != nil {
		return err
	}
	got, err := dst.Digest(dstBuf)
	if err != nil {
		return err
	}
	if want != got {
		return errors.Newf("digest mismatch after transcode: %016x != %016x", got, want)
	}

	return nil
}
