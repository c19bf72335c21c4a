package cli

import (
	"fmt"
	"io"
	"runtime/debug"
)

var buildVersion = "dev"

func init() {
	buildVersion = resolveBuildVersion(buildVersion)
}

func handleRootFlags(args []string) (bool, int) {
	if len(args) != 1 {
		return false, 0
	}

	switch args[0] {
	case "--version", "-V":
		fmt.Fprintf(rootStdout, "mcpchat %s\n", buildVersion)
		return true, 0
	case "--help", "-h":
		printRootHelp(rootStdout)
		return true, 0
	default:
		return false, 0
	}
}

func resolveBuildVersion(defaultVersion string) string {
	if defaultVersion != "" && defaultVersion != "dev" {
		return defaultVersion
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return defaultVersion
	}
	if info.Main.Version == "" || info.Main.Version == "(devel)" {
		return defaultVersion
	}
	return info.Main.Version
}

func printRootHelp(out io.Writer) {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  mcpchat [FLAGS] <server-script.py>")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Starts an interactive chat session. The server script is run as a")
	fmt.Fprintln(out, "Python subprocess and its tools are offered to the model.")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Flags:")
	fmt.Fprintln(out, "  -m, --model MODEL   model to query (default qwen2.5:7b)")
	fmt.Fprintln(out, "  -u, --url URL       Ollama base URL (default http://localhost:11434)")
	fmt.Fprintln(out, "  -h, --help          show this help")
	fmt.Fprintln(out, "  -V, --version       print version")
}
