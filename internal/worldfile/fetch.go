package worldfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"voxelwalk/internal/voxel"

	getter "github.com/hashicorp/go-getter"
	"github.com/sirupsen/logrus"
)

// Fetch downloads a world file from any go-getter source (local path,
// http(s), s3, gcs, git...) into dir and loads it.
func Fetch(ctx context.Context, src, dir string, log logrus.FieldLogger) (*voxel.Dense, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create map dir: %w", err)
	}
	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getwd: %w", err)
	}

	dst := filepath.Join(dir, "world.vxw")
	log.WithField("src", src).Info("Fetching world")

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}

	g, err := LoadFile(dst)
	if err != nil {
		return nil, err
	}
	sx, sy, sz := g.Size()
	log.WithFields(logrus.Fields{"x": sx, "y": sy, "z": sz}).Info("World loaded")
	return g, nil
}
