// Package reconciliacao mantém consistentes o valor contratado de um
// projeto, as transações lançadas nele e a conta sintética "Saldo a
// receber". Toda mutação de projeto, transação ou conta passa por aqui.
package reconciliacao

import (
	"errors"
	"fmt"
	"time"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Erros devolvidos pelo caminho de reparo idempotente.
var (
	ErrContaNaoPaga    = errors.New("conta ainda não está paga")
	ErrContaSemProjeto = errors.New("conta não está vinculada a um projeto")
)

// ContaStore é o que o motor precisa do repositório de contas.
type ContaStore interface {
	ListarPorProjeto(projetoID uint) ([]models.Conta, error)
	Criar(c *models.Conta) error
	Atualizar(c *models.Conta) error
}

// TransacaoStore é o que o motor precisa do repositório de transações.
type TransacaoStore interface {
	ListarPorProjeto(projetoID uint) ([]models.Transacao, error)
	Criar(t *models.Transacao) error
}

// ProjetoStore carrega o projeto para re-sincronização após espelhamento.
type ProjetoStore interface {
	BuscarPorID(id uint) (*models.Projeto, error)
}

// Engine executa a sincronização de forma síncrona, dentro da requisição
// que disparou a mutação. Não há fila nem retry: se uma etapa falhar no
// meio, a conta fica defasada até a próxima mutação rodar a sincronização
// de novo. Requisições concorrentes sobre o mesmo projeto podem ler somas
// defasadas; a última sincronização gravada vence.
type Engine struct {
	contas     ContaStore
	transacoes TransacaoStore
	projetos   ProjetoStore
	log        zerolog.Logger

	// espelhoUnico evita transação espelhada duplicada quando uma conta
	// alterna pago/pendente/pago. Desligado por padrão (comportamento
	// histórico: uma transação por evento de pagamento).
	espelhoUnico bool
}

// NewEngine monta o motor de reconciliação.
func NewEngine(contas ContaStore, transacoes TransacaoStore, projetos ProjetoStore, log zerolog.Logger, espelhoUnico bool) *Engine {
	return &Engine{
		contas:       contas,
		transacoes:   transacoes,
		projetos:     projetos,
		log:          log,
		espelhoUnico: espelhoUnico,
	}
}

func hoje() string {
	return time.Now().Format("2006-01-02")
}

// SincronizarContasProjeto recalcula o saldo a receber do projeto e
// materializa/atualiza a conta sintética correspondente. Qualquer erro é
// logado e engolido: a operação que disparou a sincronização nunca falha
// por causa dela.
func (e *Engine) SincronizarContasProjeto(p *models.Projeto) {
	if err := e.sincronizar(p); err != nil {
		var id uint
		if p != nil {
			id = p.ID
		}
		e.log.Error().Err(err).Uint("projetoId", id).Msg("falha ao sincronizar contas do projeto")
	}
}

// sincronizar faz no máximo uma escrita (create ou update) por chamada e
// nunca remove conta. Chamado duas vezes sem mudança nas transações, a
// segunda chamada não escreve nada.
func (e *Engine) sincronizar(p *models.Projeto) error {
	if p == nil {
		return errors.New("projeto nulo")
	}

	transacoes, err := e.transacoes.ListarPorProjeto(p.ID)
	if err != nil {
		return fmt.Errorf("listar transações: %w", err)
	}
	recebido := decimal.Zero
	for _, t := range transacoes {
		if t.Tipo == models.TransacaoReceita {
			recebido = recebido.Add(t.Valor)
		}
	}
	pendente := p.Valor.Sub(recebido)

	contas, err := e.contas.ListarPorProjeto(p.ID)
	if err != nil {
		return fmt.Errorf("listar contas: %w", err)
	}
	// Primeira conta tipo=receber do projeto é a sintética. Se existirem
	// várias (criadas à mão pelo CRUD genérico), só a primeira é tocada.
	var existente *models.Conta
	for i := range contas {
		if contas[i].Tipo == models.ContaReceber {
			existente = &contas[i]
			break
		}
	}

	if pendente.IsPositive() {
		valor := pendente.Round(2)
		descricao := "Saldo a receber - " + p.Nome

		if existente != nil {
			if existente.Status == models.ContaPendente &&
				existente.Valor.Equal(valor) &&
				existente.Descricao == descricao &&
				existente.Vencimento == p.Data {
				return nil
			}
			existente.Descricao = descricao
			existente.Valor = valor
			existente.Vencimento = p.Data
			existente.Status = models.ContaPendente
			existente.Data = hoje()
			projetoID := p.ID
			existente.ProjetoID = &projetoID
			if err := e.contas.Atualizar(existente); err != nil {
				return fmt.Errorf("atualizar conta a receber: %w", err)
			}
			return nil
		}

		projetoID := p.ID
		nova := models.Conta{
			Tipo:       models.ContaReceber,
			Descricao:  descricao,
			Valor:      valor,
			Vencimento: p.Data,
			Status:     models.ContaPendente,
			ProjetoID:  &projetoID,
			Data:       hoje(),
		}
		if err := e.contas.Criar(&nova); err != nil {
			return fmt.Errorf("criar conta a receber: %w", err)
		}
		return nil
	}

	// Saldo quitado: a conta existente vira "pago" com o valor contratado
	// cheio (representa "totalmente recebido", não "nada a receber").
	if existente != nil {
		if existente.Status == models.ContaPago && existente.Valor.Equal(p.Valor) {
			return nil
		}
		existente.Status = models.ContaPago
		existente.Valor = p.Valor
		if err := e.contas.Atualizar(existente); err != nil {
			return fmt.Errorf("quitar conta a receber: %w", err)
		}
	}
	return nil
}

// AoMarcarContaPaga espelha o pagamento de uma conta vinculada a projeto em
// uma transação e re-sincroniza o projeto. Só age na transição de um status
// não-pago para pago; repetir a transição (pago→pendente→pago) gera uma
// segunda transação, a menos que a trava espelhoUnico esteja ligada.
func (e *Engine) AoMarcarContaPaga(c *models.Conta, statusAnterior string) {
	if c == nil || c.Status != models.ContaPago || statusAnterior == models.ContaPago {
		return
	}
	if c.ProjetoID == nil {
		return
	}
	if err := e.espelhar(c); err != nil {
		e.log.Error().Err(err).Uint("contaId", c.ID).Msg("falha ao espelhar pagamento de conta")
	}
}

// GarantirTransacaoParaContaPaga é o reparo idempotente do espelhamento:
// devolve a transação espelhada existente ou cria uma nova (e re-sincroniza
// o projeto) se ainda não houver.
func (e *Engine) GarantirTransacaoParaContaPaga(c *models.Conta) (*models.Transacao, error) {
	if c == nil {
		return nil, errors.New("conta nula")
	}
	if c.Status != models.ContaPago {
		return nil, ErrContaNaoPaga
	}
	if c.ProjetoID == nil {
		return nil, ErrContaSemProjeto
	}

	existente, err := e.buscarEspelho(c)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return existente, nil
	}

	tipo, prefixo, ok := espelhoPara(c.Tipo)
	if !ok {
		return nil, fmt.Errorf("tipo de conta desconhecido: %q", c.Tipo)
	}
	t := &models.Transacao{
		ProjetoID: *c.ProjetoID,
		Tipo:      tipo,
		Descricao: prefixo + c.Descricao,
		Valor:     c.Valor,
		Data:      hoje(),
	}
	if err := e.transacoes.Criar(t); err != nil {
		return nil, fmt.Errorf("criar transação espelhada: %w", err)
	}
	e.RessincronizarProjeto(*c.ProjetoID)
	return t, nil
}

func (e *Engine) espelhar(c *models.Conta) error {
	tipo, prefixo, ok := espelhoPara(c.Tipo)
	if !ok {
		return nil
	}

	if e.espelhoUnico {
		existente, err := e.buscarEspelho(c)
		if err != nil {
			return err
		}
		if existente != nil {
			e.log.Warn().Uint("contaId", c.ID).Uint("transacaoId", existente.ID).
				Msg("espelho já existe; criação ignorada pela trava espelhoUnico")
			e.RessincronizarProjeto(*c.ProjetoID)
			return nil
		}
	}

	t := models.Transacao{
		ProjetoID: *c.ProjetoID,
		Tipo:      tipo,
		Descricao: prefixo + c.Descricao,
		Valor:     c.Valor,
		Data:      hoje(),
	}
	if err := e.transacoes.Criar(&t); err != nil {
		return fmt.Errorf("criar transação espelhada: %w", err)
	}
	e.RessincronizarProjeto(*c.ProjetoID)
	return nil
}

// RessincronizarProjeto recarrega o projeto e roda a sincronização
// best-effort. Falhas ao carregar o projeto são logadas e engolidas, como
// qualquer outra falha de sincronização.
func (e *Engine) RessincronizarProjeto(projetoID uint) {
	p, err := e.projetos.BuscarPorID(projetoID)
	if err != nil {
		e.log.Error().Err(err).Uint("projetoId", projetoID).Msg("falha ao recarregar projeto para re-sincronização")
		return
	}
	e.SincronizarContasProjeto(p)
}

// buscarEspelho procura a transação espelhada da conta: mesmo projeto,
// direção correspondente, descrição com o prefixo esperado e valor exato.
func (e *Engine) buscarEspelho(c *models.Conta) (*models.Transacao, error) {
	tipo, prefixo, ok := espelhoPara(c.Tipo)
	if !ok {
		return nil, nil
	}
	transacoes, err := e.transacoes.ListarPorProjeto(*c.ProjetoID)
	if err != nil {
		return nil, fmt.Errorf("listar transações: %w", err)
	}
	esperada := prefixo + c.Descricao
	for i := range transacoes {
		t := &transacoes[i]
		if t.Tipo == tipo && t.Descricao == esperada && t.Valor.Equal(c.Valor) {
			return t, nil
		}
	}
	return nil, nil
}

func espelhoPara(tipoConta string) (tipo, prefixo string, ok bool) {
	switch tipoConta {
	case models.ContaReceber:
		return models.TransacaoReceita, "Recebimento: ", true
	case models.ContaPagar:
		return models.TransacaoDespesa, "Despesa: ", true
	}
	return "", "", false
}
