// Command civrecomp is the entry orchestrator: it loads a translated
// Civilization MZ image and runs the MSC startup simulation, which
// calls the translated entry point once on the main goroutine. There
// is no separate frame loop: the program ends when that entry returns.
package main

/*
 * civrecomp - entry orchestrator
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	getopt "github.com/pborman/getopt/v2"

	"github.com/sp00nznet/civrecomp/emu/cpu"
	"github.com/sp00nznet/civrecomp/emu/dos"
	"github.com/sp00nznet/civrecomp/emu/hal/input"
	"github.com/sp00nznet/civrecomp/emu/hal/timer"
	"github.com/sp00nznet/civrecomp/emu/hal/video"
	"github.com/sp00nznet/civrecomp/emu/ioport"
	"github.com/sp00nznet/civrecomp/emu/loader"
	"github.com/sp00nznet/civrecomp/emu/memory"
	"github.com/sp00nznet/civrecomp/emu/platform"
	"github.com/sp00nznet/civrecomp/emu/startup"
	"github.com/sp00nznet/civrecomp/util/logger"
)

// translatedEntry stands in for the external static translator's
// emitted game routine. This repository covers only the execution
// core; a real build links a generated entry point in its place, and
// that generated code is what ports.In/ports.Out exist for — a
// translated OUT DX,AL against the VGA DAC or PIT compiles down to a
// direct call against the dispatcher it receives here. The stub
// probes the VGA retrace status port once, purely to prove the
// dispatch path from entry to the video HAL is live end to end, then
// halts immediately.
var translatedEntry startup.Entry = func(c *cpu.State, mem *memory.Memory, ports *ioport.Dispatcher) {
	status := ports.In(video.PortInputStatus)
	slog.Info("no translated entry point linked; halting immediately", "vga_status_probe", status)
}

func main() {
	optScale := getopt.IntLong("scale", 's', 3, "Window scale multiplier")
	optGameDir := getopt.StringLong("gamedir", 'g', ".", "Root directory for DOS file paths")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("EXE_PATH")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logFile *os.File
	if *optLogFile != "" {
		logFile, _ = os.Create(*optLogFile)
	}
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	slog.SetDefault(slog.New(logger.NewHandler(logFile, &slog.HandlerOptions{Level: level}, false)))

	exePath := "CIV.EXE"
	if args := getopt.Args(); len(args) > 0 {
		exePath = args[0]
	}

	data, err := os.ReadFile(exePath)
	if err != nil {
		slog.Error("failed to read executable", "path", exePath, "error", err)
		os.Exit(1)
	}

	mem := memory.New()
	c := cpu.New()

	hdr, err := loader.Load(data, mem, c)
	if err != nil {
		slog.Error("failed to load MZ image", "path", exePath, "error", err)
		os.Exit(1)
	}
	slog.Info("loaded executable", "path", exePath, "header", hdr.String(), "scale", *optScale)

	d := dos.New(*optGameDir)
	d.Keyboard = input.NewKeyboard()
	d.Mouse = input.NewMouse()
	d.Timer = timer.New(nowMs())
	d.Video = video.New()
	dos.InitBIOSDataArea(mem)

	ports := ioport.New(d.Video, d.Timer)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	var running atomic.Bool
	running.Store(true)
	go func() {
		<-sigChan
		running.Store(false)
	}()

	platform.Install(d, nil, func(_ platform.Context, st *dos.State) {
		st.HandleInt08(mem, nowMs())
		if !running.Load() {
			st.ExitCode = 0
			c.Halted = true
		}
	})

	startup.Run(hdr, mem, c, ports, translatedEntry)

	slog.Info("program terminated", "exit_code", d.ExitCode)
	if logFile != nil {
		logFile.Close()
	}
	os.Exit(int(d.ExitCode))
}

var processStart = time.Now()

func nowMs() uint64 {
	return uint64(time.Since(processStart).Milliseconds())
}
