package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cougarbots/site/pkg/embedded"
)

// defaultPreloadConcurrency 并发解码图片的 goroutine 上限
const defaultPreloadConcurrency = 4

// ResourceManager is responsible for centralized management of images and fonts.
// It provides loading and caching so every resource is decoded once and reused.
//
// Images go through two caches:
//   - decoded: image.Image values produced by Preload on worker goroutines (guarded by mu)
//   - imageCache: *ebiten.Image values created on the game goroutine by LoadImage
//
// Preload implements intro.Preloader: it is fire-and-forget, decode failures are
// logged and remembered but never returned, so the montage keeps its schedule.
//
// Usage:
//
//	rm := NewResourceManager(logger)
//	rm.Preload(paths)                                // warm the cache in the background
//	img, err := rm.LoadImage("assets/intro/01.png")  // game goroutine
type ResourceManager struct {
	mu      sync.Mutex
	decoded map[string]image.Image // Preload results: path -> decoded image
	failed  map[string]error       // Paths that could not be read or decoded

	imageCache    map[string]*ebiten.Image     // Game goroutine only: path -> ebiten image
	fontFaceCache map[float64]*text.GoTextFace // Font faces keyed by size
	fontSource    *text.GoTextFaceSource

	readFile    func(path string) ([]byte, error)
	concurrency int
	preloads    sync.WaitGroup
	logger      *zap.Logger
}

// NewResourceManager creates a ResourceManager reading from the embedded
// resources (with a disk fallback for development).
//
// Parameters:
//   - logger: destination for load warnings; nil disables logging.
func NewResourceManager(logger *zap.Logger) *ResourceManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceManager{
		decoded:       make(map[string]image.Image),
		failed:        make(map[string]error),
		imageCache:    make(map[string]*ebiten.Image),
		fontFaceCache: make(map[float64]*text.GoTextFace),
		readFile:      embedded.ReadFileOrDisk,
		concurrency:   defaultPreloadConcurrency,
		logger:        logger.Named("resources"),
	}
}

// SetReader replaces the file reader (used by tests and the terminal preview).
func (rm *ResourceManager) SetReader(readFile func(path string) ([]byte, error)) {
	rm.readFile = readFile
}

// Preload decodes every path in the background, at most `concurrency` at a time.
// Already decoded paths are skipped. The call returns immediately.
func (rm *ResourceManager) Preload(paths []string) {
	todo := make([]string, 0, len(paths))
	rm.mu.Lock()
	for _, p := range paths {
		if _, ok := rm.decoded[p]; !ok {
			todo = append(todo, p)
		}
	}
	rm.mu.Unlock()
	if len(todo) == 0 {
		return
	}

	rm.preloads.Add(1)
	go func() {
		defer rm.preloads.Done()

		var g errgroup.Group
		g.SetLimit(rm.concurrency)
		for _, path := range todo {
			g.Go(func() error {
				// 单张失败不影响其他图片
				if _, err := rm.decode(path); err != nil {
					rm.logger.Warn("preload failed", zap.String("path", path), zap.Error(err))
				}
				return nil
			})
		}
		_ = g.Wait()
		rm.logger.Debug("preload finished", zap.Int("images", len(todo)))
	}()
}

// WaitPreload blocks until every Preload started so far has finished.
func (rm *ResourceManager) WaitPreload() {
	rm.preloads.Wait()
}

// DecodedImage returns the decoded image for path, decoding it synchronously
// if Preload has not reached it yet.
//
// Returns:
//   - The decoded image.
//   - An error if the file cannot be read or decoded.
func (rm *ResourceManager) DecodedImage(path string) (image.Image, error) {
	rm.mu.Lock()
	img, ok := rm.decoded[path]
	rm.mu.Unlock()
	if ok {
		return img, nil
	}
	return rm.decode(path)
}

// Failed returns the error recorded for path by a previous load, if any.
func (rm *ResourceManager) Failed(path string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.failed[path]
}

func (rm *ResourceManager) decode(path string) (image.Image, error) {
	data, err := rm.readFile(path)
	if err != nil {
		err = fmt.Errorf("failed to open image file %s: %w", path, err)
		rm.recordFailure(path, err)
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		err = fmt.Errorf("failed to decode image %s: %w", path, err)
		rm.recordFailure(path, err)
		return nil, err
	}

	rm.mu.Lock()
	rm.decoded[path] = img
	delete(rm.failed, path)
	rm.mu.Unlock()
	return img, nil
}

func (rm *ResourceManager) recordFailure(path string, err error) {
	rm.mu.Lock()
	rm.failed[path] = err
	rm.mu.Unlock()
}

// LoadImage returns the ebiten image for path, creating and caching it on first use.
// Must be called from the game goroutine.
//
// Error handling:
//   - Returns an error if the file does not exist or cannot be decoded.
//   - Callers in the intro treat a missing image as an empty frame.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cached, ok := rm.imageCache[path]; ok {
		return cached, nil
	}
	img, err := rm.DecodedImage(path)
	if err != nil {
		return nil, err
	}
	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache, or nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// Face returns a font face of the given size using the bundled M+ 1p font.
func (rm *ResourceManager) Face(size float64) (*text.GoTextFace, error) {
	if face, ok := rm.fontFaceCache[size]; ok {
		return face, nil
	}
	if rm.fontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.MPlus1pRegular_ttf))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source: %w", err)
		}
		rm.fontSource = source
	}
	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face, nil
}
