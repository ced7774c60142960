// Package cache keeps downloaded images in memory and on disk.
package cache

import (
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/singleflight"
)

const maxConcurrentDownloads = 4

// ImageCache provides disk + memory caching for images.
type ImageCache struct {
	cacheDir   string
	httpClient *http.Client

	mu     sync.Mutex
	memory map[string]*ebiten.Image

	inflight singleflight.Group
	sem      chan struct{}
}

// NewImageCache creates a new image cache with the given disk directory.
func NewImageCache(cacheDir string) (*ImageCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("image cache: %w", err)
	}
	return &ImageCache{
		cacheDir:   cacheDir,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		memory:     make(map[string]*ebiten.Image),
		sem:        make(chan struct{}, maxConcurrentDownloads),
	}, nil
}

// Get returns a cached image if available, or nil.
func (ic *ImageCache) Get(url string) *ebiten.Image {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.memory[url]
}

// LoadAsync starts loading an image from URL in the background. The callback
// runs with the image once it is ready, possibly on another goroutine; it is
// not called when the download fails. Concurrent loads of one URL share a
// single download.
func (ic *ImageCache) LoadAsync(url string, callback func(*ebiten.Image)) {
	if img := ic.Get(url); img != nil {
		callback(img)
		return
	}

	go func() {
		v, err, _ := ic.inflight.Do(url, func() (any, error) {
			ic.sem <- struct{}{}
			defer func() { <-ic.sem }()

			img, err := ic.loadImage(url)
			if err != nil {
				return nil, err
			}
			eimg := ebiten.NewImageFromImage(img)
			ic.mu.Lock()
			ic.memory[url] = eimg
			ic.mu.Unlock()
			return eimg, nil
		})
		if err != nil {
			log.Printf("ImageCache: %s: %v", url, err)
			return
		}
		callback(v.(*ebiten.Image))
	}()
}

// LoadDecodedImage downloads and decodes an image from URL, returning a
// standard image.Image. Uses the same disk cache as LoadAsync but does not
// store the result in the in-memory ebiten cache.
func (ic *ImageCache) LoadDecodedImage(url string) (image.Image, error) {
	return ic.loadImage(url)
}

func (ic *ImageCache) loadImage(url string) (image.Image, error) {
	diskPath := ic.diskPath(url)

	if f, err := os.Open(diskPath); err == nil {
		img, _, err := image.Decode(f)
		f.Close()
		if err == nil {
			return img, nil
		}
		// Corrupt cache file, remove and re-download
		os.Remove(diskPath)
	}

	resp, err := ic.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed: %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(diskPath)
	if err != nil {
		return nil, err
	}

	// Tee to disk while decoding
	img, _, err := image.Decode(io.TeeReader(resp.Body, f))
	if err == nil {
		// drain trailing bytes the decoder didn't need so the file is complete
		_, err = io.Copy(f, resp.Body)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(diskPath)
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}

func (ic *ImageCache) diskPath(url string) string {
	h := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", h[:16])
	return filepath.Join(ic.cacheDir, name[:2], name)
}

// CacheDir returns the disk cache directory path.
func (ic *ImageCache) CacheDir() string {
	return ic.cacheDir
}

// Clear removes all cached images from memory.
func (ic *ImageCache) Clear() {
	ic.mu.Lock()
	ic.memory = make(map[string]*ebiten.Image)
	ic.mu.Unlock()
}

// ClearDisk removes all cached images from disk and memory.
func (ic *ImageCache) ClearDisk() error {
	ic.Clear()
	return os.RemoveAll(ic.cacheDir)
}
