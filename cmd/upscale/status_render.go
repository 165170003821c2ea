package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

func renderErrorLine(err error, colorize bool) string {
	line := "error: " + err.Error()
	if colorize {
		return ansiRed + line + ansiReset
	}
	return line
}

func renderOKLine(message string, colorize bool) string {
	if colorize {
		return ansiGreen + message + ansiReset
	}
	return message
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
