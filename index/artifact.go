// Copyright 2026 Opporank Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/opporank/opporank/core"
	"golang.org/x/sync/errgroup"
)

// Artifact file layout (mus-go encoded after the raw magic bytes):
//
//	index file:  "OPIX" | version | metric | dim | count | fingerprint | count vectors
//	id-map file: "OPIM" | version | fingerprint | ids
//
// The two files are written and loaded as a pair. A pair whose cardinalities
// or fingerprints disagree is rejected as corrupt.
const (
	indexMagic      = "OPIX"
	idMapMagic      = "OPIM"
	artifactVersion = 1
)

var (
	vectorSer = ord.NewSliceSer[float32](raw.Float32)
	idsSer    = ord.NewSliceSer[string](ord.String)
)

// Artifacts is a loaded (index, id map) pair.
type Artifacts struct {
	Index       *Flat
	IDMap       IDMap
	Fingerprint string
}

// WriteArtifacts persists the index and id map as a pair. Each file is
// written to a temporary sibling and renamed into place, so a crashed write
// never publishes a partial artifact. The fingerprint identifies the
// catalog snapshot the pair was built from.
func WriteArtifacts(indexPath, idMapPath string, idx *Flat, idMap IDMap, fingerprint string) error {
	if idx.Count() != idMap.Len() {
		return fmt.Errorf("%w: index holds %d vectors but id map has %d entries",
			core.ErrIndexCorrupt, idx.Count(), idMap.Len())
	}

	if err := writeFileAtomic(indexPath, marshalIndex(idx, fingerprint)); err != nil {
		return fmt.Errorf("writing index artifact: %w", err)
	}
	if err := writeFileAtomic(idMapPath, marshalIDMap(idMap, fingerprint)); err != nil {
		return fmt.Errorf("writing id map artifact: %w", err)
	}
	return nil
}

// LoadArtifacts reads an (index, id map) pair. Both files are read
// concurrently; the pair is rejected with ErrIndexCorrupt when either file
// is malformed, the cardinalities differ, or the fingerprints disagree.
func LoadArtifacts(ctx context.Context, indexPath, idMapPath string) (*Artifacts, error) {
	var (
		idx     *Flat
		idxFp   string
		idMap   IDMap
		idMapFp string
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := os.ReadFile(indexPath)
		if err != nil {
			return fmt.Errorf("%w: reading index artifact: %w", core.ErrIndexCorrupt, err)
		}
		idx, idxFp, err = unmarshalIndex(data)
		return err
	})
	g.Go(func() error {
		data, err := os.ReadFile(idMapPath)
		if err != nil {
			return fmt.Errorf("%w: reading id map artifact: %w", core.ErrIndexCorrupt, err)
		}
		idMap, idMapFp, err = unmarshalIDMap(data)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if idx.Count() != idMap.Len() {
		return nil, fmt.Errorf("%w: index holds %d vectors but id map has %d entries",
			core.ErrIndexCorrupt, idx.Count(), idMap.Len())
	}
	if idxFp != idMapFp {
		return nil, fmt.Errorf("%w: index fingerprint %q does not match id map fingerprint %q",
			core.ErrIndexCorrupt, idxFp, idMapFp)
	}

	return &Artifacts{Index: idx, IDMap: idMap, Fingerprint: idxFp}, nil
}

func marshalIndex(idx *Flat, fingerprint string) []byte {
	size := len(indexMagic) +
		varint.Int.Size(artifactVersion) +
		varint.Int.Size(int(idx.Metric())) +
		varint.Int.Size(idx.Dim()) +
		varint.Int.Size(idx.Count()) +
		ord.String.Size(fingerprint)
	for pos := 0; pos < idx.Count(); pos++ {
		size += vectorSer.Size(idx.vectorAt(pos))
	}

	bs := make([]byte, size)
	n := copy(bs, indexMagic)
	n += varint.Int.Marshal(artifactVersion, bs[n:])
	n += varint.Int.Marshal(int(idx.Metric()), bs[n:])
	n += varint.Int.Marshal(idx.Dim(), bs[n:])
	n += varint.Int.Marshal(idx.Count(), bs[n:])
	n += ord.String.Marshal(fingerprint, bs[n:])
	for pos := 0; pos < idx.Count(); pos++ {
		n += vectorSer.Marshal(idx.vectorAt(pos), bs[n:])
	}
	return bs
}

func unmarshalIndex(bs []byte) (*Flat, string, error) {
	if len(bs) < len(indexMagic) || !bytes.Equal(bs[:len(indexMagic)], []byte(indexMagic)) {
		return nil, "", fmt.Errorf("%w: bad index artifact magic", core.ErrIndexCorrupt)
	}
	off := len(indexMagic)

	version, n, err := varint.Int.Unmarshal(bs[off:])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrIndexCorrupt, err)
	}
	off += n
	if version != artifactVersion {
		return nil, "", fmt.Errorf("%w: unsupported index artifact version %d", core.ErrIndexCorrupt, version)
	}

	metric, n, err := varint.Int.Unmarshal(bs[off:])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrIndexCorrupt, err)
	}
	off += n
	if Metric(metric) != MetricInnerProduct {
		return nil, "", fmt.Errorf("%w: unsupported similarity metric %d", core.ErrIndexCorrupt, metric)
	}

	dim, n, err := varint.Int.Unmarshal(bs[off:])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrIndexCorrupt, err)
	}
	off += n

	count, n, err := varint.Int.Unmarshal(bs[off:])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrIndexCorrupt, err)
	}
	off += n
	if count < 0 || dim < 0 {
		return nil, "", fmt.Errorf("%w: negative cardinality in index header", core.ErrIndexCorrupt)
	}

	fingerprint, n, err := ord.String.Unmarshal(bs[off:])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrIndexCorrupt, err)
	}
	off += n

	idx, err := NewFlat(dim)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrIndexCorrupt, err)
	}
	for i := 0; i < count; i++ {
		vec, n, err := vectorSer.Unmarshal(bs[off:])
		if err != nil {
			return nil, "", fmt.Errorf("%w: vector %d: %w", core.ErrIndexCorrupt, i, err)
		}
		off += n
		if err := idx.Add(vec); err != nil {
			return nil, "", err
		}
	}

	return idx, fingerprint, nil
}

func marshalIDMap(idMap IDMap, fingerprint string) []byte {
	ids := []string(idMap)
	size := len(idMapMagic) +
		varint.Int.Size(artifactVersion) +
		ord.String.Size(fingerprint) +
		idsSer.Size(ids)

	bs := make([]byte, size)
	n := copy(bs, idMapMagic)
	n += varint.Int.Marshal(artifactVersion, bs[n:])
	n += ord.String.Marshal(fingerprint, bs[n:])
	idsSer.Marshal(ids, bs[n:])
	return bs
}

func unmarshalIDMap(bs []byte) (IDMap, string, error) {
	if len(bs) < len(idMapMagic) || !bytes.Equal(bs[:len(idMapMagic)], []byte(idMapMagic)) {
		return nil, "", fmt.Errorf("%w: bad id map artifact magic", core.ErrIndexCorrupt)
	}
	off := len(idMapMagic)

	version, n, err := varint.Int.Unmarshal(bs[off:])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrIndexCorrupt, err)
	}
	off += n
	if version != artifactVersion {
		return nil, "", fmt.Errorf("%w: unsupported id map artifact version %d", core.ErrIndexCorrupt, version)
	}

	fingerprint, n, err := ord.String.Unmarshal(bs[off:])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrIndexCorrupt, err)
	}
	off += n

	ids, _, err := idsSer.Unmarshal(bs[off:])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrIndexCorrupt, err)
	}

	return IDMap(ids), fingerprint, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
