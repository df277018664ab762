//go:build !windows

// Package main provides stubs for service functions on non-Windows platforms.
package main

import "fmt"

// RunAsService is a no-op on non-Windows platforms.
// Returns false to indicate the application should run normally.
func RunAsService() (bool, error) {
	return false, nil
}

// PrintServiceUsage prints the help/usage information for service commands.
func PrintServiceUsage() {
	fmt.Println("Status Backend Service Management")
	fmt.Println()
	fmt.Println("Service commands (install, start, stop, ...) are only supported on Windows.")
	fmt.Println("Run without arguments to start the application in foreground mode.")
}

// HandleServiceCommand handles service-related command-line arguments.
// On non-Windows platforms the management commands are recognized but only
// print a notice. Returns true if a command was handled.
func HandleServiceCommand(args []string) bool {
	if len(args) < 2 {
		return false
	}

	switch args[1] {
	case "install", "uninstall", "remove", "start", "stop", "restart", "status":
		fmt.Printf("The %q command is only supported on Windows\n", args[1])
		return true
	case "help", "-h", "--help", "-help":
		PrintServiceUsage()
		return true
	}

	return false
}
