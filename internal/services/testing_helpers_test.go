package services

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/rxtech-lab/launchpad-drafts/internal/models"
)

// fakeFile is an in-memory models.File whose reported size and read
// behaviour can be controlled.
type fakeFile struct {
	name        string
	contentType string
	data        []byte
	size        int64
	openErr     error
	readErr     error
}

func newFakeFile(name, contentType string, data []byte) *fakeFile {
	return &fakeFile{name: name, contentType: contentType, data: data, size: int64(len(data))}
}

func (f *fakeFile) Name() string { return f.name }
func (f *fakeFile) Type() string { return f.contentType }
func (f *fakeFile) Size() int64  { return f.size }

func (f *fakeFile) Open() (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	if f.readErr != nil {
		return io.NopCloser(io.MultiReader(bytes.NewReader(f.data), errReader{f.readErr})), nil
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

var errDiskGone = errors.New("disk gone")

// fixedClock returns a clock that starts at start and advances one
// millisecond per call.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Millisecond)
		return now
	}
}

func ptr[T any](v T) *T {
	return &v
}

func sampleCandyMachine(id string) models.CandyMachine {
	return models.CandyMachine{
		ID:               id,
		Blockchain:       models.ChainTypeSolana,
		Name:             "Foo Collection",
		Symbol:           "FOO",
		Supply:           100,
		MintPrice:        0.5,
		ManifestURL:      "https://arweave.net/manifest.json",
		DeploymentStatus: models.DeploymentStatusPending,
	}
}
