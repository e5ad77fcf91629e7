package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/box73oficina/api-embaixador/internal/audit"
	"github.com/box73oficina/api-embaixador/internal/auth"
	"github.com/box73oficina/api-embaixador/internal/cupom"
	"github.com/box73oficina/api-embaixador/internal/embaixador"
	"github.com/box73oficina/api-embaixador/internal/indicacao"
	"github.com/box73oficina/api-embaixador/internal/mecanica"
	"github.com/box73oficina/api-embaixador/internal/middleware"
	"github.com/box73oficina/api-embaixador/internal/relatorio"
	"github.com/box73oficina/api-embaixador/internal/usuario"
	"github.com/box73oficina/api-embaixador/internal/utils/db"
)

// origensCORS lê CORS_ORIGINS (separadas por vírgula); sem a variável,
// libera qualquer origem.
func origensCORS() []string {
	v := os.Getenv("CORS_ORIGINS")
	if v == "" {
		return []string{"*"}
	}
	var origens []string
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origens = append(origens, o)
		}
	}
	return origens
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	database, err := db.GetDB()
	if err != nil {
		logger.Fatal("erro ao conectar no banco", zap.Error(err))
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&usuario.Usuario{},
		&embaixador.Embaixador{},
		&mecanica.Mecanica{},
		&cupom.Cupom{},
		&indicacao.Indicacao{},
		&audit.RegistroAuditoria{},
	); err != nil {
		logger.Fatal("erro no AutoMigrate", zap.Error(err))
	}

	registrador := audit.NewRegistrador(logger)

	// Handlers
	usuarioHandler := usuario.NewHandler(database, registrador)
	embaixadorHandler := embaixador.NewHandler(database, registrador)
	mecanicaHandler := mecanica.NewHandler(database, registrador)
	cupomHandler := cupom.NewHandler(database, registrador)
	indicacaoHandler := indicacao.NewHandler(database, registrador)
	relatorioHandler := relatorio.NewHandler(database)
	auditHandler := audit.NewHandler(database)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))

	// Rota pública de autenticação
	r.HandleFunc("/auth/login", usuarioHandler.Login).Methods("POST")

	// Rotas protegidas
	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	gestao := auth.RequirePapeis(auth.PapelAdmin, auth.PapelGerente)
	somenteAdmin := auth.RequirePapeis(auth.PapelAdmin)

	api.HandleFunc("/auth/perfil", usuarioHandler.Perfil).Methods("GET")

	// Rotas de usuários (operadores)
	api.HandleFunc("/usuarios", usuarioHandler.Listar).Methods("GET")
	api.Handle("/usuarios", somenteAdmin(http.HandlerFunc(usuarioHandler.Criar))).Methods("POST")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	api.Handle("/usuarios/{id}", somenteAdmin(http.HandlerFunc(usuarioHandler.Atualizar))).Methods("PUT")
	api.Handle("/usuarios/{id}/alternar-ativo", somenteAdmin(http.HandlerFunc(usuarioHandler.AlternarAtivo))).Methods("PATCH")

	// Rotas de embaixadores
	api.HandleFunc("/embaixadores", embaixadorHandler.Listar).Methods("GET")
	api.HandleFunc("/embaixadores", embaixadorHandler.Criar).Methods("POST")
	api.HandleFunc("/embaixadores/cpf/{cpf}", embaixadorHandler.BuscarPorCPF).Methods("GET")
	api.HandleFunc("/embaixadores/{id}", embaixadorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/embaixadores/{id}", embaixadorHandler.Atualizar).Methods("PUT")
	api.Handle("/embaixadores/{id}", gestao(http.HandlerFunc(embaixadorHandler.Desativar))).Methods("DELETE")
	api.HandleFunc("/embaixadores/{id}/cupons", cupomHandler.ListarPorEmbaixador).Methods("GET")

	// Rotas de mecânicas
	api.HandleFunc("/mecanicas", mecanicaHandler.Listar).Methods("GET")
	api.Handle("/mecanicas", gestao(http.HandlerFunc(mecanicaHandler.Criar))).Methods("POST")
	api.HandleFunc("/mecanicas/validas", mecanicaHandler.ListarValidas).Methods("GET")
	api.HandleFunc("/mecanicas/{id}", mecanicaHandler.BuscarPorID).Methods("GET")
	api.Handle("/mecanicas/{id}", gestao(http.HandlerFunc(mecanicaHandler.Atualizar))).Methods("PATCH")
	api.Handle("/mecanicas/{id}/alternar-status", gestao(http.HandlerFunc(mecanicaHandler.AlternarStatus))).Methods("PATCH")

	// Rotas de cupons
	api.HandleFunc("/cupons", cupomHandler.Listar).Methods("GET")
	api.HandleFunc("/cupons", cupomHandler.Criar).Methods("POST")
	api.HandleFunc("/cupons/sugerir-codigo", cupomHandler.SugerirCodigo).Methods("GET")
	api.HandleFunc("/cupons/codigo/{codigo}", cupomHandler.BuscarPorCodigo).Methods("GET")
	api.Handle("/cupons/{id}/desativar", gestao(http.HandlerFunc(cupomHandler.Desativar))).Methods("PATCH")

	// Rotas de indicações
	api.HandleFunc("/indicacoes", indicacaoHandler.Listar).Methods("GET")
	api.HandleFunc("/indicacoes", indicacaoHandler.Criar).Methods("POST")
	api.HandleFunc("/indicacoes/recentes", indicacaoHandler.ListarRecentes).Methods("GET")
	api.Handle("/indicacoes/{id}/cancelar", gestao(http.HandlerFunc(indicacaoHandler.Cancelar))).Methods("PATCH")
	api.HandleFunc("/indicacoes/historico/{cpf}", indicacaoHandler.Historico).Methods("GET")

	// Rotas de relatórios
	api.HandleFunc("/relatorios/dashboard", relatorioHandler.Dashboard).Methods("GET")
	api.HandleFunc("/relatorios/vencedores", relatorioHandler.Vencedores).Methods("GET")

	// Auditoria (somente ADMIN)
	api.Handle("/auditoria", somenteAdmin(http.HandlerFunc(auditHandler.Listar))).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: origensCORS(),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("servidor rodando", zap.String("porta", port))
	if err := http.ListenAndServe(":"+port, c.Handler(r)); err != nil {
		logger.Fatal("servidor encerrado", zap.Error(err))
	}
}
