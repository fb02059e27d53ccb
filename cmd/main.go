package main

import (
	"net/http"
	"os"

	"github.com/CristalRio/api-vidracaria/internal/arquivo"
	"github.com/CristalRio/api-vidracaria/internal/auth"
	"github.com/CristalRio/api-vidracaria/internal/cliente"
	"github.com/CristalRio/api-vidracaria/internal/config"
	"github.com/CristalRio/api-vidracaria/internal/conta"
	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/CristalRio/api-vidracaria/internal/orcamento"
	"github.com/CristalRio/api-vidracaria/internal/projeto"
	"github.com/CristalRio/api-vidracaria/internal/reconciliacao"
	"github.com/CristalRio/api-vidracaria/internal/transacao"
	"github.com/CristalRio/api-vidracaria/internal/usuario"
	"github.com/CristalRio/api-vidracaria/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	nivel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		nivel = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(nivel).With().Timestamp().Logger()

	database, err := db.Conectar(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("erro ao conectar no banco")
	}

	if err := database.AutoMigrate(
		&models.Usuario{},
		&models.Cliente{},
		&models.Projeto{},
		&models.Transacao{},
		&models.Conta{},
		&models.Orcamento{},
		&models.ItemOrcamento{},
		&models.ArquivoProjeto{},
		&models.ArquivoTransacao{},
	); err != nil {
		logger.Fatal().Err(err).Msg("erro no AutoMigrate")
	}

	storage, err := arquivo.NewStorage(cfg.StorageDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("erro ao preparar o storage de arquivos")
	}

	// Motor de reconciliação compartilhado pelos handlers
	engine := reconciliacao.NewEngine(
		conta.NewRepository(database),
		transacao.NewRepository(database),
		projeto.NewRepository(database),
		logger,
		cfg.EspelhoUnico,
	)

	// Handlers
	usuarioHandler := usuario.NewHandler(database, []byte(cfg.JWTSecret))
	clienteHandler := cliente.NewHandler(database)
	projetoHandler := projeto.NewHandler(database, engine)
	transacaoHandler := transacao.NewHandler(database, engine)
	contaHandler := conta.NewHandler(database, engine)
	orcamentoHandler := orcamento.NewHandler(database)
	arquivoHandler := arquivo.NewHandler(database, storage)

	if err := usuarioHandler.Repository.SeedAdmin(cfg.AdminEmail, cfg.AdminSenha); err != nil {
		logger.Fatal().Err(err).Msg("erro ao criar usuário administrador inicial")
	}

	// Router
	r := mux.NewRouter()
	r.HandleFunc("/api/login", usuarioHandler.Login).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.Middleware([]byte(cfg.JWTSecret)))

	api.Handle("/usuarios", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.Criar))).Methods("POST")

	// Rotas de clientes
	api.HandleFunc("/clientes", clienteHandler.Criar).Methods("POST")
	api.HandleFunc("/clientes", clienteHandler.Listar).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/clientes/{id}", clienteHandler.Deletar).Methods("DELETE")

	// Rotas de projetos (toda mutação re-sincroniza as contas)
	api.HandleFunc("/projetos", projetoHandler.Criar).Methods("POST")
	api.HandleFunc("/projetos", projetoHandler.Listar).Methods("GET")
	api.HandleFunc("/projetos/{id}", projetoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/projetos/{id}", projetoHandler.Atualizar).Methods("PATCH")
	api.HandleFunc("/projetos/{id}/status", projetoHandler.AtualizarStatus).Methods("PUT")
	api.HandleFunc("/projetos/{id}", projetoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/projetos/{id}/relatorio", projetoHandler.Relatorio).Methods("GET")
	api.HandleFunc("/projetos/{id}/arquivos", arquivoHandler.ListarPorProjeto).Methods("GET")

	// Rotas de transações
	api.HandleFunc("/transacoes", transacaoHandler.Criar).Methods("POST")
	api.HandleFunc("/transacoes", transacaoHandler.Listar).Methods("GET")
	api.HandleFunc("/transacoes/{id}", transacaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/transacoes/{id}", transacaoHandler.Atualizar).Methods("PATCH")
	api.HandleFunc("/transacoes/{id}", transacaoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/transacoes/{id}/arquivos", arquivoHandler.ListarPorTransacao).Methods("GET")

	// Rotas de contas a pagar/receber
	api.HandleFunc("/contas", contaHandler.Criar).Methods("POST")
	api.HandleFunc("/contas", contaHandler.Listar).Methods("GET")
	api.HandleFunc("/contas/{id}", contaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/contas/{id}", contaHandler.Atualizar).Methods("PATCH")
	api.HandleFunc("/contas/{id}", contaHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/contas/{id}/garantir-transacao", contaHandler.GarantirTransacao).Methods("POST")

	// Rotas de orçamentos
	api.HandleFunc("/orcamentos", orcamentoHandler.Criar).Methods("POST")
	api.HandleFunc("/orcamentos", orcamentoHandler.Listar).Methods("GET")
	api.HandleFunc("/orcamentos/{id}", orcamentoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/orcamentos/{id}", orcamentoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/orcamentos/{id}", orcamentoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/orcamentos/{id}/pdf", orcamentoHandler.PDF).Methods("GET")

	// Rotas de arquivos
	api.HandleFunc("/arquivos/upload", arquivoHandler.Upload).Methods("POST")
	api.HandleFunc("/arquivos/{id}/download", arquivoHandler.Download).Methods("GET")
	api.HandleFunc("/arquivos/{id}", arquivoHandler.Deletar).Methods("DELETE")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	logger.Info().Str("porta", cfg.Porta).Msg("servidor rodando")
	if err := http.ListenAndServe(":"+cfg.Porta, handler); err != nil {
		logger.Fatal().Err(err).Msg("servidor encerrou com erro")
	}
}
