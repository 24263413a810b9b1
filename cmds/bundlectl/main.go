// Copyright (c) 2013 Uwe Hoffmann. All rights reserved.

/*
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

   * Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
   * Redistributions in binary form must reproduce the above
copyright notice, this list of conditions and the following disclaimer
in the documentation and/or other materials provided with the
distribution.
   * Neither the name of Google Inc. nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// bundlectl is a command-line client for the bundler HTTP API, grounded on
// service/commander.go's use of github.com/uwedeportivo/commander +
// github.com/gonuts/flag for the teacher's interactive Romba console.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gonuts/flag"
	"github.com/uwedeportivo/commander"
)

func newCommand() *commander.Command {
	cmd := new(commander.Command)
	cmd.UsageLine = "bundlectl"
	cmd.Subcommands = make([]*commander.Command, 2)
	cmd.Flag = *flag.NewFlagSet("bundlectl", flag.ContinueOnError)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Subcommands[0] = &commander.Command{
		Run:       submit,
		UsageLine: "submit -server <addr> -type ZIP -max-size 100 [-out bundle] <space-separated list of file paths>",
		Short:     "Submits a bundle job and prints the resulting job id.",
		Long: `
Submits a bundle job to a running bundler server over its HTTP API and
prints the job_id assigned to it.`,
		Flag:   *flag.NewFlagSet("bundlectl-submit", flag.ContinueOnError),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	cmd.Subcommands[0].Flag.String("server", "http://localhost:8080", "bundler server base URL")
	cmd.Subcommands[0].Flag.String("type", "ZIP", "archive type: ZIP, TAR, AR, CPIO, GZIP, BZIP2")
	cmd.Subcommands[0].Flag.Int("max-size", 100, "target archive size in MB")
	cmd.Subcommands[0].Flag.String("out", "bundle", "output filename template")
	cmd.Subcommands[0].Flag.String("user", "", "user name recorded on the job")

	cmd.Subcommands[1] = &commander.Command{
		Run:       status,
		UsageLine: "status -server <addr> <job id>",
		Short:     "Prints the current snapshot of a submitted job.",
		Flag:      *flag.NewFlagSet("bundlectl-status", flag.ContinueOnError),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
	cmd.Subcommands[1].Flag.String("server", "http://localhost:8080", "bundler server base URL")

	return cmd
}

func submit(cmd *commander.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("submit requires at least one file path")
	}

	files := make([]map[string]string, len(args))
	for i, path := range args {
		files[i] = map[string]string{"path": path}
	}

	maxSize, err := strconv.Atoi(cmd.Flag.Lookup("max-size").Value.String())
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]interface{}{
		"files":           files,
		"type":            cmd.Flag.Lookup("type").Value.String(),
		"max_size":        maxSize,
		"output_filename": cmd.Flag.Lookup("out").Value.String(),
		"user_name":       cmd.Flag.Lookup("user").Value.String(),
	})
	if err != nil {
		return err
	}

	server := strings.TrimSuffix(cmd.Flag.Lookup("server").Value.String(), "/")
	resp, err := http.Post(server+"/BundleFilesJSON", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Stdout, string(out))
	return nil
}

func status(cmd *commander.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("status requires exactly one job id")
	}

	server := strings.TrimSuffix(cmd.Flag.Lookup("server").Value.String(), "/")
	resp, err := http.Get(server + "/GetState?job_id=" + args[0])
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Stdout, string(out))
	return nil
}

func main() {
	cmd := newCommand()
	err := cmd.Flag.Parse(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}

	args := cmd.Flag.Args()
	if len(args) == 0 {
		cmd.Usage()
		os.Exit(1)
	}

	err = cmd.Run(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bundlectl: %v\n", err)
		os.Exit(1)
	}
}
