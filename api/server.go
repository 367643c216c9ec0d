package api

import (
	"context"
	"fmt"

	"github.com/alex-pricope/hackathon-judging-api/api/auth"
	"github.com/alex-pricope/hackathon-judging-api/api/controllers"
	"github.com/alex-pricope/hackathon-judging-api/api/transport"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

// Storages holds one storage per table.
type Storages struct {
	Teams     storage.TeamStorage
	Panelists storage.PanelistStorage
	Scores    storage.ScoreStorage
	UseCases  storage.UseCaseStorage
	Criteria  storage.JudgingCriteriaStorage
}

// NewDynamoStorages binds every storage to its configured table.
func NewDynamoStorages(client storage.DynamoAPI, conf StorageConfig) *Storages {
	return &Storages{
		Teams:     &storage.DynamoTeamStorage{Client: client, TableName: conf.TableNameTeams},
		Panelists: &storage.DynamoPanelistStorage{Client: client, TableName: conf.TableNamePanelists},
		Scores:    &storage.DynamoScoreStorage{Client: client, TableName: conf.TableNameScores},
		UseCases:  &storage.DynamoUseCaseStorage{Client: client, TableName: conf.TableNameUseCases},
		Criteria:  &storage.DynamoJudgingCriteriaStorage{Client: client, TableName: conf.TableNameJudgingCriteria},
	}
}

// NewEngine builds the router with every controller registered.
func NewEngine(ginMode string, stores *Storages, tokens *auth.TokenService, registry *prometheus.Registry) *gin.Engine {
	r := transport.NewRouter(ginMode, registry)
	authn := transport.NewAuthenticator(tokens)

	controllers.NewAuthController(stores.Teams, stores.Panelists, tokens).RegisterRoutes(r)
	controllers.NewTeamController(stores.Teams, stores.Scores, stores.UseCases).RegisterRoutes(r, authn)
	controllers.NewScoreController(stores.Scores, stores.Teams).RegisterRoutes(r, authn)
	controllers.NewUseCaseController(stores.UseCases).RegisterRoutes(r, authn)
	controllers.NewJudgingCriteriaController(stores.Criteria).RegisterRoutes(r, authn)
	controllers.NewPanelistController(stores.Panelists).RegisterRoutes(r, authn)

	return r
}

func (s *Server) Start() {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}
	dynamoClient := dynamodb.NewFromConfig(cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	ginMode := gin.ReleaseMode
	if s.config.Local {
		ginMode = gin.DebugMode
	}
	r := NewEngine(ginMode, NewDynamoStorages(dynamoClient, s.config.StorageConfig), auth.NewTokenService(s.config.JWTSecret), registry)

	//Do not run lambda helper locally
	if s.config.Local {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Debugf("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
