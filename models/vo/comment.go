package vo

import (
	"sort"
	"time"

	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/pathcodec"
)

// CommentResponse 定义了单条评论的响应数据结构，子回复内嵌成树。
type CommentResponse struct {
	ID              uint64    `json:"id"`               // 评论ID
	PostID          uint64    `json:"post_id"`          // 所属帖子ID
	ParentID        uint64    `json:"parent_id"`        // 父评论ID，根评论为 0
	Path            string    `json:"path"`             // 物化路径
	Depth           int       `json:"depth"`            // 树深度，根为 0
	Content         string    `json:"content"`          // 评论正文
	AuthorID        string    `json:"author_id"`        // 作者ID
	AuthorUsername  string    `json:"author_username"`  // 作者用户名
	UpvoteCount     int64     `json:"upvote_count"`     // 点赞数
	ReplyCount      int64     `json:"reply_count"`      // 直接回复数
	PopularityScore float64   `json:"popularity_score"` // 热度分数
	SentimentLabel  string    `json:"sentiment_label"`  // 情感标签
	SentimentColors []string  `json:"sentiment_colors"` // 情感色板，首个为主色
	ToxicityTags    []string  `json:"toxicity_tags"`    // 毒性/内容过滤标签
	CreatedAt       time.Time `json:"created_at"`       // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`       // 更新时间

	// Replies 是展示深度内的子回复，同级按热度分数降序。
	Replies []*CommentResponse `json:"replies"`

	// Collapsed 为 true 表示该评论还有更深的回复被折叠，
	// 客户端可携带该评论ID调用聚焦视图继续展开。
	Collapsed bool `json:"collapsed"`
}

// CommentTreeVO 定义了帖子评论树的响应结构。
type CommentTreeVO struct {
	PostID   uint64             `json:"post_id"`  // 帖子ID
	Comments []*CommentResponse `json:"comments"` // 根评论列表，按热度分数降序
	Total    int64              `json:"total"`    // 该帖子下评论总数（含所有深度）
}

// CommentThreadVO 定义了聚焦视图的响应结构：从某条评论向下展开的子树。
type CommentThreadVO struct {
	Focus *CommentResponse `json:"focus"` // 焦点评论，其 Replies 为展开的子树
}

// mapCommentToResponseVO 转换单条评论实体，不挂载子回复。
func mapCommentToResponseVO(c *entities.Comment) *CommentResponse {
	return &CommentResponse{
		ID:              c.ID,
		PostID:          c.PostID,
		ParentID:        c.ParentID,
		Path:            c.Path,
		Depth:           c.Depth,
		Content:         c.Content,
		AuthorID:        c.AuthorID,
		AuthorUsername:  c.AuthorUsername,
		UpvoteCount:     c.UpvoteCount,
		ReplyCount:      c.ReplyCount,
		PopularityScore: c.PopularityScore,
		SentimentLabel:  c.SentimentLabel,
		SentimentColors: c.SentimentColors,
		ToxicityTags:    c.ToxicityTags,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Replies:         []*CommentResponse{},
	}
}

// BuildCommentForest 把按 path 字典序（即先序）排列的评论平铺列表组装成树。
//
//   - baseDepth 是列表中根层级的深度（整树视图为 0，聚焦视图为焦点评论的深度）。
//   - maxDepth 是相对 baseDepth 的展示深度上限；更深的节点不输出，
//     其父节点标记 Collapsed 供客户端按需展开。
//   - 同级节点按热度分数降序、分数相同按 path 升序（即发表顺序）排列。
func BuildCommentForest(comments []*entities.Comment, baseDepth, maxDepth int) []*CommentResponse {
	if len(comments) == 0 {
		return []*CommentResponse{}
	}

	byPath := make(map[string]*CommentResponse, len(comments))
	roots := make([]*CommentResponse, 0)

	for _, c := range comments {
		rel := c.Depth - baseDepth
		if rel > maxDepth {
			// 超出展示深度：只把折叠标记传导给可见的祖先。
			if parent := visibleAncestor(byPath, c.Path, baseDepth+maxDepth); parent != nil {
				parent.Collapsed = true
			}
			continue
		}
		node := mapCommentToResponseVO(c)
		byPath[c.Path] = node
		if rel == 0 {
			roots = append(roots, node)
			continue
		}
		if parent, ok := byPath[parentPathOf(c.Path)]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}

	sortForest(roots)
	return roots
}

// visibleAncestor 沿 path 向上找到深度不超过 limitDepth 的最近已见祖先。
func visibleAncestor(byPath map[string]*CommentResponse, path string, limitDepth int) *CommentResponse {
	p := parentPathOf(path)
	for p != "" {
		if node, ok := byPath[p]; ok && pathcodec.DepthOf(p) <= limitDepth {
			return node
		}
		p = parentPathOf(p)
	}
	return nil
}

func parentPathOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return ""
}

// sortForest 递归地对每一层按热度分数降序排序；分数相同保持先序（即发表顺序）。
func sortForest(nodes []*CommentResponse) {
	if len(nodes) == 0 {
		return
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].PopularityScore > nodes[j].PopularityScore
	})
	for _, n := range nodes {
		sortForest(n.Replies)
	}
}
