package embedded

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	assetsFS, dataFS, initialized = nil, nil, false
}

// TestNotInitialized 验证未初始化时所有访问都返回错误
func TestNotInitialized(t *testing.T) {
	reset()
	t.Cleanup(reset)

	assert.False(t, IsInitialized())

	_, err := Open("assets/intro/01.png")
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = ReadFile("data/intro.yaml")
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = Glob("assets/intro/*.png")
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.False(t, Exists("data/intro.yaml"))
}

// TestRouting 验证按前缀选择文件系统
func TestRouting(t *testing.T) {
	reset()
	t.Cleanup(reset)

	Init(fstest.MapFS{
		"assets/intro/01.png": {Data: []byte("png-1")},
		"assets/intro/02.png": {Data: []byte("png-2")},
	}, fstest.MapFS{
		"data/intro.yaml": {Data: []byte("image_count: 2\n")},
	})
	require.True(t, IsInitialized())

	data, err := ReadFile("data/intro.yaml")
	require.NoError(t, err)
	assert.Equal(t, "image_count: 2\n", string(data))

	data, err = ReadFile("./assets/intro/01.png")
	require.NoError(t, err)
	assert.Equal(t, "png-1", string(data))

	matches, err := Glob("assets/intro/*.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/intro/01.png", "assets/intro/02.png"}, matches)

	assert.True(t, Exists("assets/intro/02.png"))
	assert.False(t, Exists("assets/intro/03.png"))
	assert.False(t, Exists("data/intro/01.png"))

	_, err = ReadFile("public/logo.png")
	assert.ErrorContains(t, err, "unknown resource path prefix")
}

// TestReadFileOrDisk 验证嵌入文件优先，缺失时回退磁盘
func TestReadFileOrDisk(t *testing.T) {
	reset()
	t.Cleanup(reset)

	_, err := ReadFileOrDisk("data/intro.yaml")
	assert.Error(t, err, "no embedded FS and no file on disk relative to package dir")

	Init(fstest.MapFS{}, fstest.MapFS{
		"data/intro.yaml": {Data: []byte("embedded")},
	})
	data, err := ReadFileOrDisk("data/intro.yaml")
	require.NoError(t, err)
	assert.Equal(t, "embedded", string(data))

	data, err = ReadFileOrDisk("embedded.go")
	require.NoError(t, err)
	assert.Contains(t, string(data), "package embedded")
}
