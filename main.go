package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	"github.com/jesseduffield/cntr/pkg/app"
	"github.com/jesseduffield/cntr/pkg/attach"
	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/jesseduffield/cntr/pkg/config"
	"github.com/jesseduffield/cntr/pkg/container"
	"github.com/jesseduffield/yaml"
	"github.com/samber/lo"
	"go.podman.io/storage/pkg/reexec"
)

const DEFAULT_VERSION = "unversioned"

// Exit codes reserved by the attach/exec CLI surface: the child's own exit
// code passes through untouched, so these three values identify failures
// that happened before the child ever execs.
const (
	exitAttachFailure = 125
	exitToolsMissing  = 126
	exitNotFound      = 127
)

var (
	commit  string
	version = DEFAULT_VERSION
	date    string

	configFlag    = false
	debuggingFlag = false

	containerName  string
	command        []string
	backendTypes   []string
	effectiveUser  string
	backendCommand string
)

func main() {
	// reexec.Init() must run before any other code: if this invocation is
	// actually the re-exec'd child role (see pkg/attach/child.go), the
	// registered initializer runs childMain and never returns here.
	if reexec.Init() {
		return
	}

	updateBuildInfo()

	info := fmt.Sprintf("%s\nDate: %s\nCommit: %s\nOS: %s\nArch: %s",
		version, date, commit, runtime.GOOS, runtime.GOARCH)

	flaggy.SetName("cntr")
	flaggy.SetDescription("Enter or attach debugging tools into another container's namespaces")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/jesseduffield/cntr"
	flaggy.Bool(&configFlag, "c", "config", "Print the current default config")
	flaggy.Bool(&debuggingFlag, "d", "debug", "a boolean")
	flaggy.SetVersion(info)

	attachCmd := flaggy.NewSubcommand("attach")
	attachCmd.Description = "Attach an interactive shell to a running container"
	attachCmd.AddPositionalValue(&containerName, "container", 1, true, "container name or id")
	attachCmd.StringSlice(&backendTypes, "t", "type", "container runtime backend to use (repeatable, ordered preference)")
	attachCmd.String(&effectiveUser, "u", "effective-user", "run as this user (looked up in the container's /etc/passwd)")
	attachCmd.String(&backendCommand, "", "backend-command", "custom backend: path and args of a program printing '<running>;<pid>'")
	flaggy.AttachSubcommand(attachCmd, 1)

	execCmd := flaggy.NewSubcommand("exec")
	execCmd.Description = "Run a single command inside a running container, without a pty"
	execCmd.AddPositionalValue(&containerName, "container", 1, true, "container name or id")
	execCmd.StringSlice(&backendTypes, "t", "type", "container runtime backend to use (repeatable, ordered preference)")
	execCmd.String(&effectiveUser, "u", "effective-user", "run as this user (looked up in the container's /etc/passwd)")
	execCmd.String(&backendCommand, "", "backend-command", "custom backend: path and args of a program printing '<running>;<pid>'")
	flaggy.AttachSubcommand(execCmd, 1)

	flaggy.ParseArgs(splitCommand(os.Args[1:]))

	if configFlag {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		if err := encoder.Encode(config.GetDefaultConfig()); err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("%v\n", buf.String())
		os.Exit(0)
	}

	appConfig, err := config.NewAppConfig("cntr", version, commit, debuggingFlag)
	if err != nil {
		log.Fatal(err.Error())
	}

	cntrApp, err := app.NewApp(appConfig)
	if err != nil {
		log.Fatal(err.Error())
	}

	uc := appConfig.UserConfig
	runner := container.NewExecRunner(cntrApp.Log)
	backends := container.DefaultBackends(runner)
	if backendCommand != "" {
		fields := strings.Fields(backendCommand)
		backends = append(backends, container.NewCommand(runner, fields[0], fields[1:]...))
	}

	opts := attach.Options{
		ContainerName:       containerName,
		Backends:            backends,
		PreferredType:       preferredType(backendTypes),
		EffectiveUser:       effectiveUser,
		Interactive:         attachCmd.Used,
		Command:             uc.Shell,
		HelperBinaries:      helperBinaryMap(uc.HelperBinaries),
		ExtraPathDirs:       uc.ExtraPathDirs,
		GraceTimeoutSeconds: uc.GraceSeconds,
		LockTimeoutSeconds:  uc.LockTimeoutSeconds,
	}
	if len(command) > 0 {
		opts.Command = command[0]
		opts.Arguments = command[1:]
	}

	result, runErr := cntrApp.Run(opts)
	cntrApp.Close()

	if runErr != nil {
		os.Exit(exitCodeForError(cntrApp, runErr))
	}
	os.Exit(result.ExitCode)
}

// splitCommand pulls everything after a bare "--" out of the argument list
// (the exec subcommand's "cntr exec name -- cmd args..." shape) so flaggy
// only ever sees its own flags and positionals.
func splitCommand(args []string) []string {
	for i, a := range args {
		if a == "--" {
			command = append([]string(nil), args[i+1:]...)
			return args[:i]
		}
	}
	return args
}

// helperBinaryMap turns config.UserConfig's flat list of host paths into the
// name->hostPath map dotcntr.Build expects, using each path's base name as
// the name the container sees under /.cntr/bin.
func helperBinaryMap(paths []string) map[string]string {
	if len(paths) == 0 {
		return nil
	}
	m := make(map[string]string, len(paths))
	for _, p := range paths {
		m[filepath.Base(p)] = p
	}
	return m
}

func preferredType(types []string) string {
	if len(types) == 0 {
		return ""
	}
	return types[0]
}

// exitCodeForError maps a pre-fork failure to the reserved exit codes §6
// defines, after printing a human-readable cause chain the way main's
// go-errors/known-error handling does for the teacher.
func exitCodeForError(a *app.App, err error) int {
	if msg, known := a.KnownError(err); known {
		log.Println(msg)
	} else {
		newErr := errors.Wrap(err, 0)
		a.Log.Error(newErr.ErrorStack())
		log.Println(err.Error())
	}

	switch cerrors.KindOf(err) {
	case cerrors.KindContainerNotFound, cerrors.KindContainerNotRunning, cerrors.KindContainerDied:
		return exitNotFound
	case cerrors.KindToolsMissing:
		return exitToolsMissing
	default:
		return exitAttachFailure
	}
}

func updateBuildInfo() {
	if version == DEFAULT_VERSION {
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			revision, ok := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
				return setting.Key == "vcs.revision"
			})
			if ok {
				commit = revision.Value
				version = truncate(revision.Value, 7)
			}

			t, ok := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
				return setting.Key == "vcs.time"
			})
			if ok {
				date = t.Value
			}
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}
