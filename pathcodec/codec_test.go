package pathcodec

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/myErrors"
)

func TestEncodeRoot(t *testing.T) {
	p, err := EncodeRoot(1)
	require.NoError(t, err)
	assert.Equal(t, "001", p)

	p, err = EncodeRoot(42)
	require.NoError(t, err)
	assert.Equal(t, "042", p)

	p, err = EncodeRoot(999)
	require.NoError(t, err)
	assert.Equal(t, "999", p)
}

func TestEncodeRoot_CapacityExceeded(t *testing.T) {
	_, err := EncodeRoot(1000)
	assert.ErrorIs(t, err, myErrors.ErrPathCapacityExceeded)

	_, err = EncodeRoot(0)
	assert.ErrorIs(t, err, myErrors.ErrPathCapacityExceeded)
}

func TestAppendChild(t *testing.T) {
	p, err := AppendChild("001", 1)
	require.NoError(t, err)
	assert.Equal(t, "001/001", p)

	p, err = AppendChild("001/001", 17)
	require.NoError(t, err)
	assert.Equal(t, "001/001/017", p)
}

func TestDepthOf(t *testing.T) {
	assert.Equal(t, 0, DepthOf("001"))
	assert.Equal(t, 1, DepthOf("001/002"))
	assert.Equal(t, 2, DepthOf("003/001/999"))
	assert.Equal(t, -1, DepthOf(""))
}

func TestIsDescendant(t *testing.T) {
	assert.True(t, IsDescendant("001/002", "001"))
	assert.True(t, IsDescendant("001/002/003", "001"))
	assert.True(t, IsDescendant("001/002/003", "001/002"))

	// 自身不是自己的后代。
	assert.False(t, IsDescendant("001", "001"))
	// 段边界：前缀相同但不在分隔符处断开。
	assert.False(t, IsDescendant("0011", "001"))
	assert.False(t, IsDescendant("002/001", "001"))
}

func TestOrdinals_RoundTrip(t *testing.T) {
	p, err := EncodeRoot(7)
	require.NoError(t, err)
	p, err = AppendChild(p, 30)
	require.NoError(t, err)
	p, err = AppendChild(p, 999)
	require.NoError(t, err)

	ords, err := Ordinals(p)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 30, 999}, ords)
}

func TestOrdinals_Malformed(t *testing.T) {
	_, err := Ordinals("")
	assert.Error(t, err)
	_, err = Ordinals("1/002")
	assert.Error(t, err)
	_, err = Ordinals("001/ab2")
	assert.Error(t, err)
}

// 字典序排序必须等价于树的先序遍历，这是整个物化路径设计的根基。
func TestLexicographicOrderIsPreorder(t *testing.T) {
	paths := []string{
		"001",
		"001/001",
		"001/001/001",
		"001/002",
		"001/010",
		"001/100",
		"002",
		"002/001",
		"010",
		"100",
	}
	shuffled := []string{
		"010", "001/010", "002", "001", "100", "001/001/001",
		"001/100", "002/001", "001/002", "001/001",
	}
	sort.Strings(shuffled)
	assert.Equal(t, paths, shuffled)
}
