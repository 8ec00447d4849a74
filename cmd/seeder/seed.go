package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/service"
)

// Seed 通过服务层填充测试数据：帖子、嵌套评论树和点赞。
// 走服务层而不是直插数据库，保证路径分配、计数联动和事件发送与线上一致。
func Seed(
	ctx context.Context,
	postSvc service.PostService,
	commentSvc service.CommentService,
	voteSvc service.VoteService,
	logger *core.ZapLogger,
	numPosts int,
) {
	logger.Info("开始填充测试数据 (通过服务层)...", zap.Int("帖子数量", numPosts))

	var wg sync.WaitGroup
	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for i := 0; i < numPosts; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(itemIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			authorID := uuid.New().String()
			createReq := &dto.CreatePostRequest{
				Title:          gofakeit.Sentence(gofakeit.Number(5, 15)),
				Content:        gofakeit.Paragraph(3, 5, 20, "\n\n"),
				AuthorUsername: gofakeit.Username(),
			}

			post, err := postSvc.CreatePost(ctx, authorID, createReq)
			if err != nil {
				logger.Error(fmt.Sprintf("创建帖子 %d/%d 失败", itemIndex+1, numPosts),
					zap.Error(err),
					zap.String("title", createReq.Title))
				return
			}
			logger.Info(fmt.Sprintf("成功创建帖子 %d/%d", itemIndex+1, numPosts),
				zap.Uint64("post_id", post.ID),
				zap.String("title", post.Title))

			seedCommentTree(ctx, commentSvc, voteSvc, logger, post.ID)
		}(i)
	}

	wg.Wait()
	logger.Info("测试数据填充完毕 (通过服务层)。")
}

// seedCommentTree 给一个帖子挂上随机的嵌套评论树并随机点赞。
// 根评论 2~6 条，每条评论按递减概率继续往下长回复。
func seedCommentTree(
	ctx context.Context,
	commentSvc service.CommentService,
	voteSvc service.VoteService,
	logger *core.ZapLogger,
	postID uint64,
) {
	numRoots := gofakeit.Number(2, 6)
	for i := 0; i < numRoots; i++ {
		seedCommentBranch(ctx, commentSvc, voteSvc, logger, postID, nil, 0)
	}
}

// seedCommentBranch 创建一条评论并以 60%/层级 的衰减概率继续生成子回复。
func seedCommentBranch(
	ctx context.Context,
	commentSvc service.CommentService,
	voteSvc service.VoteService,
	logger *core.ZapLogger,
	postID uint64,
	parentID *uint64,
	depth int,
) {
	authorID := uuid.New().String()
	createReq := &dto.CreateCommentRequest{
		Content:        gofakeit.Sentence(gofakeit.Number(5, 25)),
		ParentID:       parentID,
		AuthorUsername: gofakeit.Username(),
	}

	comment, err := commentSvc.CreateComment(ctx, authorID, postID, createReq)
	if err != nil {
		logger.Warn("创建评论失败",
			zap.Error(err), zap.Uint64("post_id", postID), zap.Int("depth", depth))
		return
	}

	// 随机给这条评论投几票，让热度排序有区分度。
	numVotes := gofakeit.Number(0, 5)
	for v := 0; v < numVotes; v++ {
		voterID := uuid.New().String()
		if _, err := voteSvc.ToggleVote(ctx, voterID, &dto.ToggleVoteRequest{
			TargetType: entities.TargetComment,
			TargetID:   comment.ID,
			Category:   randomVoteCategory(),
			Tag:        randomVoteTag(),
		}); err != nil {
			logger.Warn("给评论投票失败", zap.Error(err), zap.Uint64("comment_id", comment.ID))
		}
	}

	// 递减的生长概率：深度 0 为 60%，每深一层减 15%。
	growChance := 60 - depth*15
	if growChance <= 0 {
		return
	}
	numChildren := 0
	if gofakeit.Number(1, 100) <= growChance {
		numChildren = gofakeit.Number(1, 3)
	}
	for c := 0; c < numChildren; c++ {
		seedCommentBranch(ctx, commentSvc, voteSvc, logger, postID, &comment.ID, depth+1)
	}
}

// randomVoteCategory 以 3:1 的比例偏向情感维度。
func randomVoteCategory() entities.VoteCategory {
	if gofakeit.Number(1, 4) == 1 {
		return entities.CategoryContentFilter
	}
	return entities.CategoryEmotion
}

// randomVoteTag 从固定标签池里取一个，保证聚合视图里有重复标签可累计。
func randomVoteTag() string {
	tags := []string{"funny", "insightful", "wholesome", "spoiler", "offtopic"}
	return tags[gofakeit.Number(0, len(tags)-1)]
}
