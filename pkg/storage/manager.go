package storage

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/barecheradouane2/ShoppingStorev1/config"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
)

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the configured disks. The local disk is always available;
// s3 is added when S3_BUCKET is set. STORAGE_DISK selects the default.
func Connect() error {
	local, err := NewLocal(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	disks = map[string]Disk{"local": local}

	if bucket := config.StorageS3Bucket(); bucket != "" {
		s3d, err := NewS3(S3Options{
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Region:   config.StorageS3Region(),
			Bucket:   bucket,
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
		if err != nil {
			return err
		}
		disks["s3"] = s3d
	}

	defaultDisk = config.StorageDefault()
	if _, ok := disks[defaultDisk]; !ok {
		return fmt.Errorf("storage: unknown default disk %q", defaultDisk)
	}

	logger.Info("storage ready", "default", defaultDisk, "disks", len(disks))
	return nil
}

// Use returns a named disk, or the default disk when the name is unknown.
func Use(name string) Disk {
	mu.RLock()
	defer mu.RUnlock()
	if d, ok := disks[name]; ok {
		return d
	}
	return disks[defaultDisk]
}

func def() Disk {
	mu.RLock()
	defer mu.RUnlock()
	return disks[defaultDisk]
}

// ErrNotConnected is returned by the default-disk helpers before Connect.
var ErrNotConnected = errors.New("storage: not connected")

// Default-disk helpers.

func Put(path string, content []byte) error {
	d := def()
	if d == nil {
		return ErrNotConnected
	}
	return d.Put(path, content)
}

func PutStream(path string, r io.Reader) error {
	d := def()
	if d == nil {
		return ErrNotConnected
	}
	return d.PutStream(path, r)
}

func Get(path string) ([]byte, error) {
	d := def()
	if d == nil {
		return nil, ErrNotConnected
	}
	return d.Get(path)
}

func Exists(path string) bool {
	d := def()
	return d != nil && d.Exists(path)
}

func Delete(path string) error {
	d := def()
	if d == nil {
		return ErrNotConnected
	}
	return d.Delete(path)
}

func URL(path string) string {
	d := def()
	if d == nil {
		return path
	}
	return d.URL(path)
}
