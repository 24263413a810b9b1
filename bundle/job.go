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

package bundle

import (
	"os"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/uwedeportivo/bundler/binpack"
	"github.com/uwedeportivo/bundler/bundleerr"
	"github.com/uwedeportivo/bundler/config"
	"github.com/uwedeportivo/bundler/entrypath"
	"github.com/uwedeportivo/bundler/estimate"
	"github.com/uwedeportivo/bundler/fsprovider"
	"github.com/uwedeportivo/bundler/jobworker"
	"github.com/uwedeportivo/bundler/repo"
	"github.com/uwedeportivo/bundler/tracker"
	"github.com/uwedeportivo/bundler/types"
)

// Dispatcher is the Job Factory of spec §4.J: it owns the collaborators
// every submission needs (repository, normalizer, estimator, name
// generator) so that each is constructed once at process start and passed
// explicitly, rather than reached through a package-level singleton (spec
// §9 "Singletons").
type Dispatcher struct {
	repository repo.JobRepository
	normalizer *entrypath.Normalizer
	estimator  *estimate.Estimator
	names      *nameGenerator
	hashType   types.HashType
	minSizeMB  int64
	maxSizeMB  int64
	host       string
}

// NewDispatcher builds a Dispatcher from process configuration.
func NewDispatcher(repository repo.JobRepository, cfg *config.Config, host string) (*Dispatcher, error) {
	var hashType types.HashType
	switch cfg.Hash.Algorithm {
	case "", "SHA1":
		hashType = types.SHA1
	default:
		var err error
		hashType, err = parseHashType(cfg.Hash.Algorithm)
		if err != nil {
			return nil, err
		}
	}

	return &Dispatcher{
		repository: repository,
		normalizer: entrypath.NewNormalizer(cfg.Exclusions(), cfg.Staging.DirectoryBase, ""),
		estimator:  estimate.NewEstimator(cfg.Archive.AverageCompressionPct),
		names:      newNameGenerator(cfg.Staging.Directory, cfg.Staging.BaseURL),
		hashType:   hashType,
		minSizeMB:  cfg.Archive.MinSize,
		maxSizeMB:  cfg.Archive.MaxSize,
		host:       host,
	}, nil
}

func parseHashType(s string) (types.HashType, error) {
	var h types.HashType
	if err := (&h).UnmarshalText([]byte(s)); err != nil {
		return 0, bundleerr.InvalidRequest.New("unsupported hash.algorithm %q", s)
	}
	return h, nil
}

// Submit runs the full protocol of spec §4.J for one job id.
func (d *Dispatcher) Submit(jobId string, req *Request) (*types.Job, error) {
	job, archivePlans, err := d.validateAndPlan(jobId, req)
	if err != nil {
		invalid := &types.Job{
			JobId:     jobId,
			UserName:  req.normalizedUserName(),
			State:     types.InvalidRequest,
			StartTime: time.Now(),
			EndTime:   time.Now(),
		}
		if perr := d.repository.PersistJob(invalid); perr != nil {
			glog.Errorf("bundle: failed to persist INVALID_REQUEST job %s: %v", jobId, perr)
		}
		return invalid, nil
	}

	if err := d.repository.PersistJob(job); err != nil {
		return nil, err
	}

	jobDir := d.names.jobDirectory(jobId)
	if err := ensureDirectory(jobDir); err != nil {
		glog.Errorf("bundle: failed to create staging directory %s for job %s: %v", jobDir, jobId, err)
	}

	jobTracker := tracker.NewJobTracker(d.repository, jobId)

	job.State = types.InProgress
	job.StartTime = time.Now()
	if err := d.repository.UpdateJob(job); err != nil {
		return nil, err
	}

	var g errgroup.Group
	for _, plan := range archivePlans {
		archiveId := plan.ArchiveId
		w := jobworker.New(d.repository, jobTracker, jobId, archiveId, d.hashType, d.host)
		g.Go(func() error {
			w.Run()
			return nil
		})
	}

	go func() {
		_ = g.Wait()
	}()

	return job, nil
}

// validateAndPlan performs spec §4.J steps 1-3: validate, expand, bin-pack,
// and build the Job/ArchiveJob/FileEntry tree ready to persist. It does not
// mutate the repository.
func (d *Dispatcher) validateAndPlan(jobId string, req *Request) (*types.Job, []*binpack.Plan, error) {
	if len(req.Files) == 0 {
		return nil, nil, bundleerr.InvalidRequest.New("empty file list")
	}

	archiveType, err := req.archiveType()
	if err != nil {
		return nil, nil, bundleerr.InvalidRequest.New("unrecognized archive type %q: %v", req.Type, err)
	}

	sources, err := expandFiles(req.Files, d.normalizer)
	if err != nil {
		return nil, nil, err
	}
	if len(sources) == 0 {
		return nil, nil, bundleerr.InvalidRequest.New("file list expanded to zero files")
	}

	targetSize := binpack.ClampSize(req.MaxSizeMB, d.minSizeMB, d.maxSizeMB)
	plans := binpack.Pack(sources, targetSize, archiveType, d.estimator)

	job := &types.Job{
		JobId:         jobId,
		UserName:      req.normalizedUserName(),
		RequestedType: archiveType,
		TargetArchiveSize: targetSize,
		State:         types.NotStarted,
	}

	template := req.normalizedOutputFilename()

	for _, plan := range plans {
		outputURI := d.names.outputURI(jobId, template, plan.ArchiveId, archiveType)
		hashURI := d.names.hashURI(outputURI, d.hashType)

		archive := &types.ArchiveJob{
			JobId:     jobId,
			ArchiveId: plan.ArchiveId,
			Type:      archiveType,
			OutputURI: outputURI,
			HashURI:   hashURI,
			OutputURL: d.names.url(outputURI),
			HashURL:   d.names.url(hashURI),
			NumFiles:  len(plan.Elements),
			Size:      plan.Size,
			State:     types.NotStarted,
		}

		for _, elem := range plan.Elements {
			archive.Files = append(archive.Files, &types.FileEntry{
				JobId:     jobId,
				ArchiveId: plan.ArchiveId,
				SourceURI: elem.SourceURI,
				EntryPath: elem.EntryPath,
				Size:      elem.Size,
				State:     types.FileNotStarted,
			})
		}

		job.Archives = append(job.Archives, archive)
		job.NumFiles += archive.NumFiles
		job.TotalSize += archive.Size
	}
	job.NumArchives = len(job.Archives)

	return job, plans, nil
}

func ensureDirectory(dir string) error {
	if fsprovider.Scheme(dir) != "file" {
		return nil
	}
	return os.MkdirAll(fsprovider.StripScheme(dir), 0777)
}
