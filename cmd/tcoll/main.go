// Command tcoll inspects and converts typed collection buffers.
//
//	tcoll parse --kind int32 '{1, NULL, 3}' -o ints.bin
//	tcoll format --kind int32 ints.bin
//	tcoll inspect --kind int32 ints.bin
//	tcoll transcode --kind int32 --to-compact=false --to-big-endian ints.bin wide.bin
//
// Layout parameters are not stored in a buffer, so every command that reads
// one must be given the parameters that wrote it, by flags or by a YAML
// profile (--profile).
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("tcoll failed")
		os.Exit(1)
	}
}
