package router

import (
	"github.com/team-moa/moa-api-server/internal/auth"
	"github.com/team-moa/moa-api-server/internal/comment"
	"github.com/team-moa/moa-api-server/internal/config"
	"github.com/team-moa/moa-api-server/internal/donation"
	"github.com/team-moa/moa-api-server/internal/feed"
	"github.com/team-moa/moa-api-server/internal/member"
	"github.com/team-moa/moa-api-server/internal/meta"
	"github.com/team-moa/moa-api-server/internal/report"
	"github.com/team-moa/moa-api-server/internal/shared/database"
	"github.com/team-moa/moa-api-server/internal/shared/middleware"
	"github.com/team-moa/moa-api-server/internal/shared/token"
	"github.com/team-moa/moa-api-server/internal/together"
	"github.com/gin-gonic/gin"
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB) {
	// Meta handler (health check, app version, legal documents)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)

	// repository
	memberRepository := member.NewMemberRepository()
	authRepository := auth.NewAuthRepository()
	feedRepository := feed.NewFeedRepository()
	commentRepository := comment.NewCommentRepository()
	reportRepository := report.NewReportRepository()
	togetherRepository := together.NewTogetherRepository()
	donationRepository := donation.NewDonationRepository()

	// shared services
	tokenManager := token.NewJWTManager(cfg)
	providerClient := auth.NewOAuth2Client(&cfg.OAuth)
	tossClient := donation.NewTossClient(&cfg.Toss)

	// service
	authService := auth.NewAuthService(db.DB, cfg, authRepository, memberRepository, providerClient, tokenManager)
	memberService := member.NewMemberService(db.DB, memberRepository)
	feedService := feed.NewFeedService(db.DB, feedRepository)
	commentService := comment.NewCommentService(db.DB, commentRepository, feedRepository)
	reportService := report.NewReportService(db.DB, cfg, reportRepository, memberRepository, feedRepository, commentRepository)
	togetherService := together.NewTogetherService(db.DB, togetherRepository)
	donationService := donation.NewDonationService(db.DB, donationRepository, tossClient)

	// handler
	authHandler := auth.NewAuthHandler(cfg, authService)
	memberHandler := member.NewMemberHandler(memberService)
	feedHandler := feed.NewFeedHandler(feedService)
	commentHandler := comment.NewCommentHandler(commentService)
	reportHandler := report.NewReportHandler(reportService)
	togetherHandler := together.NewTogetherHandler(togetherService)
	donationHandler := donation.NewDonationHandler(donationService)

	jwt := middleware.JWT(cfg)
	optionalJWT := middleware.OptionalJWT(cfg)

	// 인증
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login/:provider", authHandler.SocialLogin)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", jwt, authHandler.Logout)
	}

	// 회원
	memberGroup := router.Group("/api/members")
	{
		memberGroup.GET("/nickname/check", memberHandler.CheckNickname)
		memberGroup.GET("/email/check", memberHandler.CheckEmail)
		memberGroup.GET("/:memberId/profile", memberHandler.GetPublicProfile)

		memberGroup.GET("/me", jwt, memberHandler.GetProfile)
		memberGroup.PATCH("/me", jwt, memberHandler.UpdateProfile)
		memberGroup.POST("/me/additional-info", jwt, memberHandler.CompleteAdditionalInfo)
		memberGroup.DELETE("/me", jwt, memberHandler.Withdraw)
	}

	// 피드
	feedGroup := router.Group("/api/feeds")
	{
		feedGroup.GET("", optionalJWT, feedHandler.Scroll)
		feedGroup.GET("/search", optionalJWT, feedHandler.Search)
		feedGroup.GET("/ranking", feedHandler.Ranking)
		feedGroup.GET("/:feedId", optionalJWT, feedHandler.Get)
		feedGroup.GET("/:feedId/comments", commentHandler.ListByFeed)
		feedGroup.GET("/:feedId/comments/popular", commentHandler.PopularByFeed)
		feedGroup.GET("/:feedId/comments/recent", commentHandler.RecentByFeed)

		feedGroup.POST("", jwt, feedHandler.Create)
		feedGroup.PUT("/:feedId", jwt, feedHandler.Update)
		feedGroup.DELETE("/:feedId", jwt, feedHandler.Delete)
		feedGroup.POST("/:feedId/reactions", jwt, feedHandler.ToggleReaction)
		feedGroup.POST("/:feedId/bookmarks", jwt, feedHandler.ToggleBookmark)
	}

	// 댓글
	commentGroup := router.Group("/api/comments")
	{
		commentGroup.GET("/:commentId", optionalJWT, commentHandler.Get)
		commentGroup.GET("/:commentId/replies", commentHandler.Replies)

		commentGroup.POST("", jwt, commentHandler.Create)
		commentGroup.PUT("/:commentId", jwt, commentHandler.Update)
		commentGroup.DELETE("/:commentId", jwt, commentHandler.Delete)
		commentGroup.POST("/:commentId/reactions", jwt, commentHandler.ToggleReaction)
	}

	// 신고
	reportGroup := router.Group("/api/reports")
	reportGroup.Use(jwt)
	{
		reportGroup.POST("", reportHandler.Create)
		reportGroup.GET("/my", reportHandler.ListMine)
	}

	// 함께하기
	togetherGroup := router.Group("/api/togethers")
	{
		togetherGroup.GET("", togetherHandler.List)
		togetherGroup.GET("/:togetherId", togetherHandler.Get)

		togetherGroup.POST("", jwt, togetherHandler.Create)
		togetherGroup.PUT("/:togetherId", jwt, togetherHandler.Update)
		togetherGroup.DELETE("/:togetherId", jwt, togetherHandler.Delete)
		togetherGroup.POST("/:togetherId/participants", jwt, togetherHandler.Join)
		togetherGroup.DELETE("/:togetherId/participants", jwt, togetherHandler.Leave)
	}

	// 후원
	donationGroup := router.Group("/api/donations")
	{
		donationGroup.GET("", donationHandler.List)
		donationGroup.GET("/:donationId", donationHandler.Get)
		donationGroup.GET("/:donationId/donors", donationHandler.ListDonors)

		donationGroup.POST("/payments/confirm", jwt, donationHandler.ConfirmPayment)
	}

	// 관리자
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(jwt)
	{
		adminGroup.GET("/reports", reportHandler.List)
		adminGroup.GET("/reports/stats", reportHandler.Stats)
		adminGroup.GET("/reports/target", reportHandler.ListByTarget)
		adminGroup.GET("/reports/members/:memberId", reportHandler.ListByReportedMember)
		adminGroup.GET("/reports/frequent-targets", reportHandler.FrequentTargets)
		adminGroup.GET("/reports/frequent-members", reportHandler.FrequentReportedMembers)
		adminGroup.PATCH("/reports/:reportId/status", reportHandler.UpdateStatus)
		adminGroup.POST("/donations", donationHandler.Create)
	}
}
