package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"benches/internal/auth"
	"benches/internal/feed"
	"benches/internal/services"
)

// Deps — зависимости обработчиков API
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Manager   *auth.Manager
	Transport auth.CookieTransport
	Cache     *services.BenchCache
	Uploader  *services.PhotoUploader
	Hub       *feed.Hub
}

// RegisterRoutes подключает все маршруты API
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(ErrorHandler())

	active := CurrentUser(d.Manager, d.Transport, Require{Active: true})
	superuser := CurrentUser(d.Manager, d.Transport, Require{Active: true, Superuser: true})

	r.GET("/health", Health(d.DB, d.Redis))

	authGroup := r.Group("/auth")
	authGroup.POST("/register", Register(d.Manager))
	authGroup.POST("/jwt/login", Login(d.Manager, d.Transport))
	authGroup.POST("/jwt/logout", active, Logout(d.Transport))
	authGroup.POST("/tg/login", TelegramLogin(d.Manager, d.Transport))
	authGroup.POST("/forgot-password", ForgotPassword(d.Manager))
	authGroup.POST("/reset-password", ResetPassword(d.Manager))
	authGroup.POST("/request-verify-token", RequestVerifyToken(d.Manager))
	authGroup.POST("/verify", Verify(d.Manager))
	authGroup.GET("/verify", VerifyLink(d.Manager))

	r.GET("/users", ListUsers(d.DB))
	users := r.Group("/users")
	users.GET("/me", active, Me())
	users.PATCH("/me", active, UpdateMe(d.Manager))
	users.GET("/:id", superuser, GetUser(d.Manager))
	users.PATCH("/:id", superuser, UpdateUser(d.Manager))
	users.DELETE("/:id", superuser, DeleteUser(d.Manager, d.Cache, d.Hub))
	r.POST("/link_tg", active, LinkTelegram(d.Manager))

	r.GET("/benches", ListBenches(d.DB, d.Cache))
	r.GET("/benches/:id", GetBench(d.DB))
	r.GET("/nearest_bench/", NearestBench(d.DB))
	r.POST("/create_bench", active, CreateBench(d.DB, d.Cache, d.Hub))
	r.DELETE("/delete_bench", active, DeleteBench(d.DB, d.Cache, d.Hub))
	r.POST("/upload_bench_photo/:id", active, UploadBenchPhoto(d.DB, d.Uploader))

	r.GET("/ws/benches", BenchesWS(d.Hub))
}
