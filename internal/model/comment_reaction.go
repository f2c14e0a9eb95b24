package model

// CommentReaction 댓글 리액션(좋아요)
type CommentReaction struct {
	BaseEntity

	MemberID  int64 `gorm:"column:member_id;not null;uniqueIndex:uk_comment_reaction_member_comment;index:idx_comment_reaction_member_id"`
	CommentID int64 `gorm:"column:comment_id;not null;uniqueIndex:uk_comment_reaction_member_comment;index:idx_comment_reaction_comment_id"`
}

func (*CommentReaction) TableName() string {
	return "comment_reaction"
}
