package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// shutdownGrace bounds how long Close waits for a polite shutdown.
const shutdownGrace = time.Second

type transport struct {
	in  io.ReadCloser
	out io.WriteCloser
}

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}

// Stdio returns a transport over the process's standard input and output,
// for use by a server.
func Stdio() io.ReadWriteCloser {
	return transport{os.Stdin, os.Stdout}
}

// Process is a client connected to a server subprocess.
type Process struct {
	*Client
	cmd *exec.Cmd
}

// Spawn starts name with args and connects a client to its standard input
// and output. The server's standard error is discarded unless stderr is
// non-nil.
func Spawn(ctx context.Context, stderr io.Writer, name string, args ...string) (*Process, error) {
	cmd := exec.Command(name, args...)
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", name, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", name, err)
	}

	return &Process{
		Client: NewClient(ctx, transport{in: stdout, out: stdin}),
		cmd:    cmd,
	}, nil
}

// Close asks the server to shut down, closes the connection and waits for
// the process to exit. A server that does not exit promptly is killed.
func (p *Process) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	_ = p.Shutdown(ctx)
	closeErr := p.Client.Close()

	done := make(chan error, 1)
	go func() { done <- p.cmd.Wait() }()

	select {
	case err := <-done:
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			return err
		}
	case <-time.After(shutdownGrace):
		_ = p.cmd.Process.Kill()
		<-done
	}
	return closeErr
}
