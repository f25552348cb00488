// Command insightctl is the command-line client for the meeting insights API.
//
// It sends a transcript file, or stdin, to a running server and prints the
// summary, decisions, action items and sentiment, or answers a question about
// the meeting. The watch subcommand processes every transcript dropped into a
// directory.
package main
