package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aurumfin/aurum/internal/cli"
	"github.com/aurumfin/aurum/internal/config"
	"github.com/aurumfin/aurum/internal/daemon"
	"github.com/aurumfin/aurum/internal/logging"
)

type serveRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	StorePath string    `json:"store_path"`
}

var (
	flagServeAddr         string
	flagServeInterval     time.Duration
	flagServeDetach       bool
	flagServePIDFile      string
	flagServeLogFile      string
	flagServeEventsBuffer int
	flagServeChild        bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the forecast daemon with HTTP/SSE endpoints",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon process and API status",
	RunE:  runServeStatus,
}

var serveStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runServeStop,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.PersistentFlags().DurationVar(&flagServeInterval, "interval", 0, "Polling interval (default from config)")
	serveCmd.PersistentFlags().StringVar(&flagServePIDFile, "pid-file", "", "PID file path (default: <data-dir>/aurumd.pid)")
	serveCmd.PersistentFlags().StringVar(&flagServeLogFile, "log-file", "", "Log file path for detached mode (default: <data-dir>/aurumd.log)")
	serveCmd.PersistentFlags().IntVar(&flagServeEventsBuffer, "events-buffer", 0, "Max in-memory events retained (default from config)")

	serveCmd.Flags().BoolVar(&flagServeDetach, "detach", false, "Run the daemon as a background process")
	serveCmd.Flags().BoolVar(&flagServeChild, "child", false, "Internal: mark detached child process")
	_ = serveCmd.Flags().MarkHidden("child")

	serveCmd.AddCommand(serveStatusCmd)
	serveCmd.AddCommand(serveStopCmd)
	rootCmd.AddCommand(serveCmd)
}

// serveSettings resolves the effective daemon settings from flags and
// config, flags winning.
type serveSettings struct {
	cfg      config.Config
	path     string
	addr     string
	interval time.Duration
	buffer   int
	pidFile  string
	logFile  string
}

func resolveServeSettings() (serveSettings, error) {
	cfg, err := loadConfig()
	if err != nil {
		return serveSettings{}, err
	}
	path, err := ensureStorePath(cfg)
	if err != nil {
		return serveSettings{}, err
	}

	st := serveSettings{
		cfg:      cfg,
		path:     path,
		addr:     config.GetServeAddr(cfg),
		interval: time.Duration(cfg.Serve.PollIntervalSecs) * time.Second,
		buffer:   cfg.Serve.EventsBuffer,
		pidFile:  filepath.Join(config.GetDataDir(cfg), "aurumd.pid"),
		logFile:  filepath.Join(config.GetDataDir(cfg), "aurumd.log"),
	}
	if flagServeAddr != "" {
		st.addr = flagServeAddr
	}
	if flagServeInterval > 0 {
		st.interval = flagServeInterval
	}
	if flagServeEventsBuffer > 0 {
		st.buffer = flagServeEventsBuffer
	}
	if flagServePIDFile != "" {
		st.pidFile = flagServePIDFile
	}
	if flagServeLogFile != "" {
		st.logFile = flagServeLogFile
	}
	return st, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagServeDetach && flagServeChild {
		return errors.New("invalid daemon launch mode")
	}

	st, err := resolveServeSettings()
	if err != nil {
		return err
	}

	if flagServeDetach {
		return startServeDetached(st)
	}
	return runServeForeground(st)
}

func startServeDetached(st serveSettings) error {
	if err := ensureDaemonNotRunning(st.pidFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(st.logFile), 0o750); err != nil {
		return fmt.Errorf("create daemon log directory: %w", err)
	}

	//nolint:gosec // daemon log path is configured by the local user
	logf, err := os.OpenFile(st.logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, args...) //nolint:gosec // exe/args come from current process invocation
	child.Stdout = logf
	child.Stderr = logf
	child.Stdin = nil
	child.Env = os.Environ()

	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	fmt.Printf("  Started daemon (pid %d)\n", child.Process.Pid)
	fmt.Printf("  PID file: %s\n", st.pidFile)
	fmt.Printf("  API: http://%s/v1/status\n", st.addr)
	fmt.Printf("  Log: %s\n", st.logFile)
	return nil
}

func runServeForeground(st serveSettings) error {
	if err := ensureDaemonNotRunning(st.pidFile); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(st.pidFile), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}

	pid := os.Getpid()
	if err := writePID(st.pidFile, pid); err != nil {
		return err
	}
	defer func() { _ = os.Remove(st.pidFile) }()

	state := serveRuntimeState{
		PID:       pid,
		Addr:      st.addr,
		StartedAt: time.Now(),
		StorePath: st.path,
	}
	_ = writeState(statePath(st.pidFile), state)
	defer func() { _ = os.Remove(statePath(st.pidFile)) }()

	log := logging.New(config.GetLogLevel(st.cfg), config.GetLogFormat(st.cfg))

	svc := daemon.New(daemon.Config{
		StorePath:    st.path,
		Addr:         st.addr,
		Interval:     st.interval,
		EventsBuffer: st.buffer,
	}, log)

	if !flagQuiet {
		fmt.Printf("  aurum daemon listening on http://%s\n", st.addr)
		fmt.Printf("  Polling %s every %s\n", st.path, st.interval)
		fmt.Printf("  Stop with: aurum serve stop --pid-file %s\n", st.pidFile)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	st, err := resolveServeSettings()
	if err != nil {
		return err
	}

	pid, err := readPID(st.pidFile)
	if err != nil {
		fmt.Println("  Daemon: not running (pid file not found)")
		return nil
	}

	if !processAlive(pid) {
		fmt.Printf("  Daemon: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := st.addr
	if rs, err := readState(statePath(st.pidFile)); err == nil && rs.Addr != "" {
		addr = rs.Addr
	}

	fmt.Printf("  Daemon PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var status daemon.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	if status.LastPollAt.IsZero() {
		fmt.Println("  Last poll: pending")
	} else {
		fmt.Printf("  Last poll: %s\n", status.LastPollAt.Local().Format(time.RFC3339))
	}
	fmt.Printf("  Poll count: %d\n", status.PollCount)
	fmt.Printf("  Starting balance: %s\n", cli.FormatAmount(status.Forecast.StartingBalance))
	fmt.Printf("  Balance on day %d: %s\n", status.Forecast.HorizonDays-1, cli.FormatAmount(status.Forecast.FinalBalance))
	if status.LastError != "" {
		fmt.Printf("  Last error: %s\n", status.LastError)
	}
	return nil
}

func runServeStop(_ *cobra.Command, _ []string) error {
	st, err := resolveServeSettings()
	if err != nil {
		return err
	}

	pid, err := readPID(st.pidFile)
	if err != nil {
		return errors.New("daemon is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal daemon process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(st.pidFile)
			_ = os.Remove(statePath(st.pidFile))
			fmt.Printf("  Stopped daemon (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("daemon (pid %d) did not exit in time", pid)
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureDaemonNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	_ = os.Remove(statePath(pidFile))
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	//nolint:gosec // daemon pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func statePath(pidFile string) string {
	return pidFile + ".json"
}

func writeState(path string, st serveRuntimeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readState(path string) (serveRuntimeState, error) {
	var st serveRuntimeState
	//nolint:gosec // daemon state path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}
