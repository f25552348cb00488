package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-insights/pkg/dispatcher"
)

const (
	defaultServer = "http://localhost:8080"
	serverEnv     = "INSIGHTS_SERVER"
)

type commandContext struct {
	server *string
	output *string
}

func newCommandContext(server, output *string) *commandContext {
	return &commandContext{server: server, output: output}
}

func (c *commandContext) serverURL() string {
	if c.server != nil && strings.TrimSpace(*c.server) != "" {
		return *c.server
	}
	if env := os.Getenv(serverEnv); env != "" {
		return env
	}
	return defaultServer
}

func (c *commandContext) client() *dispatcher.Client {
	return dispatcher.New(c.serverURL())
}

func (c *commandContext) format() (outputFormat, error) {
	value := ""
	if c.output != nil {
		value = *c.output
	}
	return parseOutputFormat(value)
}

// readTranscript reads the named file, or stdin when path is empty or "-"
func readTranscript(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}
