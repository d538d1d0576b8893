package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/config"
	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
)

// app-level container to share constructed components across packages.
// cmd/main.go fills it; the router wires modules from it.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	tokens     *helpers.TokenIssuer

	geocoder   application.Geocoder
	files      application.FileStore
	mail       application.EmailSender
	search     application.SearchIndex
	recomputer *application.Recomputer
)

func SetConfig(c *config.Config)       { cfg = c }
func GetConfig() *config.Config        { return cfg }
func SetLogger(l *logrus.Logger)       { logger = l }
func GetLogger() *logrus.Logger        { return logger }
func SetPGPool(p *pgxpool.Pool)        { pgPool = p }
func GetPGPool() *pgxpool.Pool         { return pgPool }
func SetRedis(r *redis.Client)         { redisClient = r }
func GetRedis() *redis.Client          { return redisClient }
func SetJWT(m *helpers.JWTManager)     { jwtManager = m }
func GetJWT() *helpers.JWTManager      { return jwtManager }
func SetTokens(t *helpers.TokenIssuer) { tokens = t }
func GetTokens() *helpers.TokenIssuer  { return tokens }

func SetGeocoder(g application.Geocoder)      { geocoder = g }
func GetGeocoder() application.Geocoder       { return geocoder }
func SetFiles(f application.FileStore)        { files = f }
func GetFiles() application.FileStore         { return files }
func SetMail(m application.EmailSender)       { mail = m }
func GetMail() application.EmailSender        { return mail }
func SetRecomputer(r *application.Recomputer) { recomputer = r }
func GetRecomputer() *application.Recomputer  { return recomputer }

// SetSearch registers the search index. Leave it unset when search is
// disabled; services treat a nil index as "no search".
func SetSearch(s application.SearchIndex) { search = s }
func GetSearch() application.SearchIndex  { return search }
