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

// bundlerd is the bundler HTTP server binary. Grounded on the overall shape
// of cmds/rombaserver/main.go: find and load an ini file, post-process a
// few fields, wire the process-wide collaborators, start listening, and
// catch SIGINT for a clean shutdown log line.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/golang/glog"

	"github.com/uwedeportivo/bundler/bundle"
	"github.com/uwedeportivo/bundler/config"
	"github.com/uwedeportivo/bundler/fsprovider"
	"github.com/uwedeportivo/bundler/httpapi"
	"github.com/uwedeportivo/bundler/repo"
)

func findConfig() (string, error) {
	path := "bundler.ini"
	exists, err := fsprovider.Exists("file://" + path)
	if err != nil {
		return "", err
	}
	if exists {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path = filepath.Join(home, ".bundler", "bundler.ini")
	exists, err = fsprovider.Exists("file://" + path)
	if err != nil {
		return "", err
	}
	if exists {
		return path, nil
	}
	return "", fmt.Errorf("couldn't find bundler.ini")
}

func signalCatcher() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT)
	<-ch
	glog.Info("CTRL-C; exiting")
	os.Exit(0)
}

func main() {
	configPath := flag.String("config", "", "path to bundler.ini (default: search cwd then ~/.bundler)")
	verbosity := flag.Int("verbosity", 0, "glog verbosity level")
	flag.Parse()

	iniPath := *configPath
	if iniPath == "" {
		var err error
		iniPath, err = findConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "finding bundler.ini failed: %v\n", err)
			os.Exit(1)
		}
	}

	fsprovider.Register("file", fsprovider.NewLocalDriver())

	cfg, err := config.Load(iniPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading bundler.ini from %s failed: %v\n", iniPath, err)
		os.Exit(1)
	}

	if cfg.General.LogDir != "" {
		flag.Set("log_dir", cfg.General.LogDir)
	}
	flag.Set("alsologtostderr", "true")
	flag.Set("v", strconv.Itoa(*verbosity))

	if cfg.HasS3Credentials() {
		s3Driver, err := fsprovider.NewS3Driver(fsprovider.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Role:      cfg.S3.IamRole,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating s3 driver failed: %v\n", err)
			os.Exit(1)
		}
		fsprovider.Register("s3", s3Driver)
	}

	repository, err := repo.Open("memory", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening job repository failed: %v\n", err)
		os.Exit(1)
	}

	host := cfg.Server.Host
	if host == "" {
		if hn, err := os.Hostname(); err == nil {
			host = hn
		}
	}

	dispatcher, err := bundle.NewDispatcher(repository, cfg, host)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building dispatcher failed: %v\n", err)
		os.Exit(1)
	}

	server := httpapi.NewServer(dispatcher, repository, cfg.General.BundleRequestDir)

	go signalCatcher()

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}

	glog.Infof("bundlerd listening on %s", addr)
	glog.Fatal(http.ListenAndServe(addr, server.Handler()))
}
