// Package pathcodec 实现评论树物化路径的编解码。
//
// 路径由若干定宽补零的十进制段组成，段之间以 '/' 分隔，不带末尾分隔符：
//
//	根评论:      "001"
//	其下第一条回复: "001/001"
//	更深的回复:   "001/001/002"
//
// 定宽补零 + 固定分隔符保证了两个性质：
//  1. 按 path 做字典序排序，得到的就是整棵树的先序（深度优先）序列；
//  2. 子树检索退化为一次前缀匹配（SQL 的 LIKE 'prefix/%'），无需递归查询。
package pathcodec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/myErrors"
)

// EncodeRoot 生成根评论（深度 0）的单段路径。
// ordinal 是该帖子下根评论的兄弟序号，从 1 开始。
func EncodeRoot(ordinal int) (string, error) {
	return encodeSegment(ordinal)
}

// AppendChild 在父路径后追加一段，生成子评论的路径。
func AppendChild(parentPath string, ordinal int) (string, error) {
	seg, err := encodeSegment(ordinal)
	if err != nil {
		return "", err
	}
	return parentPath + constant.PathSeparator + seg, nil
}

// DepthOf 由路径反推深度：段数减一。
// 深度与存储列 depth 冗余，但 path 永远是单一事实来源。
func DepthOf(path string) int {
	if path == "" {
		return -1
	}
	return strings.Count(path, constant.PathSeparator)
}

// IsDescendant 判断 path 是否为 ancestorPath 的真后代。
// 必须落在段边界上："001/002" 是 "001" 的后代，"0011" 不是。
func IsDescendant(path, ancestorPath string) bool {
	if ancestorPath == "" || len(path) <= len(ancestorPath) {
		return false
	}
	return strings.HasPrefix(path, ancestorPath+constant.PathSeparator)
}

// SubtreePrefix 返回用于 LIKE 前缀查询的模式串，匹配 rootPath 的全部真后代。
// 调用方通常用 `path = rootPath OR path LIKE SubtreePrefix(rootPath)` 取整棵子树。
func SubtreePrefix(rootPath string) string {
	return rootPath + constant.PathSeparator + "%"
}

// Ordinals 把路径解析回各层的兄弟序号，主要供测试和数据校验使用。
func Ordinals(path string) ([]int, error) {
	if path == "" {
		return nil, fmt.Errorf("pathcodec: empty path")
	}
	segs := strings.Split(path, constant.PathSeparator)
	out := make([]int, 0, len(segs))
	for _, s := range segs {
		if len(s) != constant.PathSegmentWidth {
			return nil, fmt.Errorf("pathcodec: malformed segment %q (want width %d)", s, constant.PathSegmentWidth)
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("pathcodec: malformed segment %q: %w", s, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// encodeSegment 把兄弟序号编码为定宽补零的段。
// 序号超出定宽容量（999）是硬上限：返回容量错误而不是生成歧义路径。
func encodeSegment(ordinal int) (string, error) {
	if ordinal < 1 || ordinal > constant.MaxSiblingsPerLevel {
		return "", fmt.Errorf("%w: ordinal %d out of [1, %d]",
			myErrors.ErrPathCapacityExceeded, ordinal, constant.MaxSiblingsPerLevel)
	}
	return fmt.Sprintf("%0*d", constant.PathSegmentWidth, ordinal), nil
}
