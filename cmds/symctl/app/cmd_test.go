package app_test

import (
	"bytes"
	"strings"

	. "github.com/mandelsoft/symbolic/pkg/testutils"
	"github.com/mandelsoft/vfs/pkg/vfs"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/symbolic/cmds/symctl/app"
	"github.com/mandelsoft/symbolic/pkg/session"
)

const EXPR = "z = x + y; w = z * z"

var _ = Describe("symctl", func() {
	var fs vfs.FileSystem
	var cmd *cobra.Command
	var buf *bytes.Buffer
	var errbuf *bytes.Buffer

	execute := func(args ...string) error {
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	BeforeEach(func() {
		fs = Must(TestFileSystem(map[string]string{
			"/data/expr.sym":   "z = x + y\nw = z * z\n",
			"/data/feeds.yaml": "x: 2\ny: 3\n",
			"/data/other.yaml": "x: 4\n",
		}))

		buf = bytes.NewBuffer(nil)
		errbuf = bytes.NewBuffer(nil)
		cmd = app.New(fs)
		cmd.SetOut(buf)
		cmd.SetErr(errbuf)
	})

	Context("eval", func() {
		It("evaluates last statement", func() {
			MustBeSuccessful(execute("eval", EXPR, "-s", "x=2", "-s", "y=3"))
			Expect(buf.String()).To(Equal("25\n"))
			Expect(errbuf.String()).To(Equal(""))
		})

		It("evaluates target", func() {
			MustBeSuccessful(execute("eval", EXPR, "-s", "x=2", "-s", "y=3", "--target", "z"))
			Expect(buf.String()).To(Equal("5\n"))
		})

		It("evaluates all definitions", func() {
			MustBeSuccessful(execute("eval", EXPR, "-s", "x=2", "-s", "y=3", "--all"))
			Expect("\n" + buf.String()).To(Equal(`
z = 5
w = 25
`))
		})

		It("yaml", func() {
			MustBeSuccessful(execute("eval", EXPR, "-s", "x=2", "-s", "y=3", "--all", "-o", "yaml"))
			Expect(buf.String()).To(YAMLEqual(`
w: 25
z: 5
`))
		})

		It("combines multiple arguments", func() {
			MustBeSuccessful(execute("eval", "z = x + y", "z * 10", "-s", "x=2", "-s", "y=3"))
			Expect(buf.String()).To(Equal("50\n"))
		})

		It("reads files", func() {
			MustBeSuccessful(execute("eval", "-f", "/data/expr.sym", "-F", "/data/feeds.yaml"))
			Expect(buf.String()).To(Equal("25\n"))
		})

		It("overrides feeds", func() {
			MustBeSuccessful(execute("eval", "-f", "/data/expr.sym", "-F", "/data/feeds.yaml", "-F", "/data/other.yaml", "-s", "y=1"))
			Expect(buf.String()).To(Equal("25\n"))
		})

		It("feeds computed nodes", func() {
			MustBeSuccessful(execute("eval", EXPR, "-s", "z=7"))
			Expect(buf.String()).To(Equal("49\n"))
		})

		It("warns about useless feeds", func() {
			MustBeSuccessful(execute("eval", EXPR, "--target", "z", "-s", "x=2", "-s", "y=3", "-s", "w=1", "-s", "v=1"))
			Expect(buf.String()).To(Equal("5\n"))
			Expect("\n" + errbuf.String()).To(Equal(`
Warning: feed "v" does not match any name
Warning: feed "w" has no effect
`))
		})

		It("reports unresolved input", func() {
			err := execute("eval", EXPR, "-s", "x=2")
			Expect(err).To(MatchError(session.ErrUnresolvedInput))
			Expect(err.Error()).To(Equal("unresolved input: y (required by w=mul->z=add)"))
		})

		It("reports depth limit", func() {
			err := execute("--max-depth", "1", "eval", EXPR, "-s", "x=2", "-s", "y=3")
			Expect(err).To(MatchError(session.ErrDepthExceeded))
		})

		It("reports missing expression", func() {
			MustFailWithMessage(execute("eval"), "expression required")
		})

		It("reports unknown target", func() {
			MustFailWithMessage(execute("eval", EXPR, "--target", "v"), `unknown target "v"`)
		})

		It("reports invalid output format", func() {
			MustFailWithMessage(execute("eval", EXPR, "-o", "json"), `invalid output format "json"`)
		})

		It("reports invalid log level", func() {
			err := execute("--log-level", "verbose", "eval", EXPR)
			Expect(err).To(MatchError(ContainSubstring(`invalid log level "verbose"`)))
		})
	})

	Context("describe", func() {
		It("describes graph", func() {
			MustBeSuccessful(execute("describe", EXPR))
			Expect("\n" + buf.String()).To(Equal(`
w=mul (
  z=add (
    x,
    y
  ),
  z=add (...)
)
expression:  ((x+y)*(x+y))
inputs:      [x y]
fingerprint: 3bc7e49e3b211385c32b09c7f0f710b2f49be19c38589708108ecb0900b92493
`))
		})

		It("yaml", func() {
			MustBeSuccessful(execute("describe", EXPR, "-t", "z", "-o", "yaml"))
			Expect(buf.String()).To(YAMLEqual(`
expression: (x+y)
inputs:
- x
- y
id: add/z(input/x,input/y):add/z,input/x,input/y
fingerprint: 64a2aef87dc56d29255c89843e6ce7c08c94f634cedc6cce477f618b59a0606f
graph: |-
  z=add (
    x,
    y
  )
`))
		})
	})

	Context("random", func() {
		It("evaluates random expressions", func() {
			MustBeSuccessful(execute("random", "--seed", "42", "--vars", "2", "--steps", "3"))
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			Expect(lines).To(HaveLen(7))
			Expect(lines[0]).To(Equal("seed: 42"))
			Expect(lines[6]).To(HavePrefix("result: "))
		})

		It("is reproducible", func() {
			MustBeSuccessful(execute("random", "--seed", "4711"))
			first := buf.String()

			buf.Reset()
			cmd = app.New(fs)
			cmd.SetOut(buf)
			MustBeSuccessful(execute("random", "--seed", "4711"))
			Expect(buf.String()).To(Equal(first))
		})

		It("rejects arguments", func() {
			Expect(execute("random", "x")).To(HaveOccurred())
		})
	})
})
