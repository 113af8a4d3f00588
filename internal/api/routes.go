package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/magnatehq/magnate-server/internal/auth"
	"github.com/magnatehq/magnate-server/internal/database"
	"github.com/magnatehq/magnate-server/internal/services"
	"github.com/magnatehq/magnate-server/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, db *sql.DB, cfg *config.Config) error {
	dbWrapper := &database.DB{DB: db}

	// Create centralized services
	svcs := services.NewServices(db, cfg)

	// Create handlers with proper service injection
	authHandler := NewAuthHandler(svcs.Auth)
	companyHandler := NewCompanyHandler(svcs.Company)
	achievementHandler := NewAchievementHandler(svcs.Achievement)
	financeHandler := NewFinanceHandler(svcs.Finance)
	marketHandler := NewMarketHandler(svcs.Market)
	politicsHandler := NewPoliticsHandler(svcs.Politics)
	complianceHandler := NewComplianceHandler(svcs.Compliance)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/logout", authHandler.Logout)

		public.GET("/health", func(c *gin.Context) {
			if err := dbWrapper.HealthCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "degraded",
					"database":  err.Error(),
					"timestamp": time.Now(),
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status":    "ok",
				"timestamp": time.Now(),
			})
		})
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	{
		protected.GET("/auth/me", authHandler.Me)

		// Company endpoints
		protected.POST("/companies", companyHandler.CreateCompany)
		protected.GET("/companies", companyHandler.GetCompanies)
		protected.GET("/companies/mine", companyHandler.GetMyCompanies)
		protected.GET("/companies/:id", companyHandler.GetCompany)
		protected.DELETE("/companies/:id", companyHandler.DeleteCompany)

		// Research milestone endpoints
		protected.POST("/companies/:id/milestones", achievementHandler.CreateMilestone)
		protected.GET("/companies/:id/milestones", achievementHandler.GetMilestones)
		protected.GET("/milestones/:id/probability", achievementHandler.GetProbability)
		protected.POST("/milestones/:id/attempt", achievementHandler.AttemptMilestone)

		// Credit and loan endpoints
		protected.GET("/companies/:id/credit-score", financeHandler.GetCreditScore)
		protected.POST("/companies/:id/loans", financeHandler.ApplyForLoan)
		protected.GET("/companies/:id/loans", financeHandler.GetLoans)
		protected.POST("/loans/:id/payments", financeHandler.MakeLoanPayment)
		protected.GET("/loans/:id/schedule", financeHandler.GetAmortizationSchedule)

		// Investment endpoints
		protected.POST("/companies/:id/investments", financeHandler.CreateInvestment)
		protected.GET("/companies/:id/investments", financeHandler.GetPortfolio)
		protected.POST("/investments/:id/liquidate", financeHandler.LiquidateInvestment)

		// Compute marketplace endpoints
		protected.POST("/market/compute/quote", marketHandler.QuoteCompute)
		protected.POST("/companies/:id/contracts", marketHandler.CreateContract)
		protected.PUT("/contracts/:id/performance", marketHandler.RecordPerformance)
		protected.POST("/contracts/:id/breach", marketHandler.ReportBreach)
		protected.POST("/contracts/:id/release", marketHandler.ReleaseEscrow)

		// Model marketplace endpoints
		protected.POST("/companies/:id/listings", marketHandler.CreateListing)
		protected.GET("/market/listings", marketHandler.GetListings)
		protected.POST("/listings/:id/sales", marketHandler.RecordSale)
		protected.GET("/companies/:id/standing", marketHandler.GetSellerStanding)

		// Politics endpoints
		protected.POST("/elections", politicsHandler.CreateElection)
		protected.POST("/elections/:id/candidates", politicsHandler.AddCandidate)
		protected.POST("/candidates/:id/votes", politicsHandler.CastVotes)
		protected.POST("/elections/:id/decide", politicsHandler.DecideElection)
		protected.POST("/bills", politicsHandler.CreateBill)
		protected.PUT("/bills/:id/votes", politicsHandler.RecordBillVotes)
		protected.GET("/bills/:id/support", politicsHandler.GetBillSupport)
		protected.POST("/candidates/:id/donations", politicsHandler.Donate)
		protected.GET("/candidates/:id/donations/:donation_id/impact", politicsHandler.GetDonorImpact)
		protected.POST("/politics/district-influence", politicsHandler.GetDistrictInfluence)
		protected.POST("/politics/outreach", politicsHandler.GetOutreachEffectiveness)
		protected.POST("/politics/campaign-performance", politicsHandler.GetCampaignPerformance)

		// Compliance endpoints
		protected.POST("/companies/:id/assets", complianceHandler.RegisterAsset)
		protected.GET("/companies/:id/assets", complianceHandler.GetAssets)
		protected.DELETE("/assets/:id", complianceHandler.RemoveAsset)
		protected.GET("/companies/:id/emissions", complianceHandler.GetEmissionsInventory)
		protected.POST("/compliance/trial-outlook", complianceHandler.GetTrialOutlook)
		protected.POST("/compliance/patent-valuation", complianceHandler.GetPatentValuation)
	}

	return nil
}
