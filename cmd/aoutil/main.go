// Command aoutil exposes the agent-orchestrator plugin utilities on the
// command line: quoting, URL validation, session-log tail reading and
// script generation for the tmux and macOS terminal plugins.
package main

func main() {
	Execute()
}
