package rank

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScore_FreshContentGetsFullBoost(t *testing.T) {
	s := NewScorer(8.0, 24.0, 3.0)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := s.Score(now, now, 0, 0)
	assert.InDelta(t, 8.0, got, 1e-9)
}

func TestScore_DecayIsExponential(t *testing.T) {
	s := NewScorer(8.0, 24.0, 3.0)
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// 经过一个衰减周期，新鲜度加成缩小为 1/e。
	got := s.Score(created, created.Add(24*time.Hour), 0, 0)
	assert.InDelta(t, 8.0/math.E, got, 1e-9)

	// 两个周期后为 1/e^2。
	got = s.Score(created, created.Add(48*time.Hour), 0, 0)
	assert.InDelta(t, 8.0/(math.E*math.E), got, 1e-9)
}

func TestScore_EngagementAdditive(t *testing.T) {
	s := NewScorer(8.0, 24.0, 3.0)
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(24 * time.Hour)

	base := s.Score(created, now, 0, 0)
	got := s.Score(created, now, 10, 4)
	assert.InDelta(t, base+10+3.0*4, got, 1e-9)
}

func TestScore_EngagementOutlivesFreshness(t *testing.T) {
	s := NewScorer(8.0, 24.0, 3.0)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.AddDate(0, 0, 30)

	// 一个月后新鲜度加成几乎归零，互动量主导排序。
	old := s.Score(created, now, 100, 0)
	fresh := s.Score(now, now, 0, 0)
	assert.Greater(t, old, fresh)
	assert.InDelta(t, 100.0, old, 0.01)
}

func TestScore_FutureCreatedAtClampedToZeroAge(t *testing.T) {
	s := NewScorer(8.0, 24.0, 3.0)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := s.Score(now.Add(time.Hour), now, 0, 0)
	assert.InDelta(t, 8.0, got, 1e-9)
}

func TestNewScorer_DefaultsOnZeroConfig(t *testing.T) {
	s := NewScorer(0, 0, 0)
	assert.Equal(t, DefaultBaseBoost, s.baseBoost)
	assert.Equal(t, DefaultDecayHalfLifeHours, s.decayHalfLifeHours)
	assert.Equal(t, DefaultCommentWeight, s.commentWeight)
}
