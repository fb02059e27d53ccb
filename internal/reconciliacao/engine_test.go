package reconciliacao

import (
	"bytes"
	"errors"
	"testing"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes em memória ----

type contasFake struct {
	itens          []models.Conta
	proxID         uint
	escritas       int
	falhaCriar     error
	falhaAtualizar error
}

func (f *contasFake) ListarPorProjeto(projetoID uint) ([]models.Conta, error) {
	var out []models.Conta
	for _, c := range f.itens {
		if c.ProjetoID != nil && *c.ProjetoID == projetoID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *contasFake) Criar(c *models.Conta) error {
	if f.falhaCriar != nil {
		return f.falhaCriar
	}
	f.proxID++
	c.ID = f.proxID
	f.itens = append(f.itens, *c)
	f.escritas++
	return nil
}

func (f *contasFake) Atualizar(c *models.Conta) error {
	if f.falhaAtualizar != nil {
		return f.falhaAtualizar
	}
	for i := range f.itens {
		if f.itens[i].ID == c.ID {
			f.itens[i] = *c
			f.escritas++
			return nil
		}
	}
	return errors.New("conta não encontrada")
}

type transacoesFake struct {
	itens      []models.Transacao
	proxID     uint
	falhaCriar error
}

func (f *transacoesFake) ListarPorProjeto(projetoID uint) ([]models.Transacao, error) {
	var out []models.Transacao
	for _, t := range f.itens {
		if t.ProjetoID == projetoID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *transacoesFake) Criar(t *models.Transacao) error {
	if f.falhaCriar != nil {
		return f.falhaCriar
	}
	f.proxID++
	t.ID = f.proxID
	f.itens = append(f.itens, *t)
	return nil
}

type projetosFake struct {
	itens map[uint]*models.Projeto
}

func (f *projetosFake) BuscarPorID(id uint) (*models.Projeto, error) {
	p, ok := f.itens[id]
	if !ok {
		return nil, errors.New("projeto não encontrado")
	}
	copia := *p
	return &copia, nil
}

// ---- helpers ----

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type ambiente struct {
	engine     *Engine
	contas     *contasFake
	transacoes *transacoesFake
	projetos   *projetosFake
}

func novoAmbiente(espelhoUnico bool, projetos ...*models.Projeto) *ambiente {
	pf := &projetosFake{itens: map[uint]*models.Projeto{}}
	for _, p := range projetos {
		pf.itens[p.ID] = p
	}
	cf := &contasFake{}
	tf := &transacoesFake{}
	return &ambiente{
		engine:     NewEngine(cf, tf, pf, zerolog.Nop(), espelhoUnico),
		contas:     cf,
		transacoes: tf,
		projetos:   pf,
	}
}

func projetoDe(valor string) *models.Projeto {
	return &models.Projeto{
		ID:     1,
		Nome:   "Box banheiro suíte",
		Valor:  d(valor),
		Data:   "2024-03-10",
		Status: models.ProjetoStatusExecucao,
	}
}

func (a *ambiente) lancarReceita(projetoID uint, valor string) {
	_ = a.transacoes.Criar(&models.Transacao{
		ProjetoID: projetoID,
		Tipo:      models.TransacaoReceita,
		Descricao: "Entrada",
		Valor:     d(valor),
		Data:      "2024-03-15",
	})
}

func (a *ambiente) contaReceber(t *testing.T, projetoID uint) *models.Conta {
	t.Helper()
	contas, err := a.contas.ListarPorProjeto(projetoID)
	require.NoError(t, err)
	for i := range contas {
		if contas[i].Tipo == models.ContaReceber {
			return &contas[i]
		}
	}
	return nil
}

// ---- SincronizarContasProjeto ----

func TestSincronizarCriaContaPendente(t *testing.T) {
	p := projetoDe("1000.00")
	a := novoAmbiente(false, p)

	a.engine.SincronizarContasProjeto(p)

	c := a.contaReceber(t, p.ID)
	require.NotNil(t, c)
	assert.Equal(t, "Saldo a receber - Box banheiro suíte", c.Descricao)
	assert.True(t, c.Valor.Equal(d("1000.00")), "valor: %s", c.Valor)
	assert.Equal(t, models.ContaPendente, c.Status)
	assert.Equal(t, p.Data, c.Vencimento)
	require.NotNil(t, c.ProjetoID)
	assert.Equal(t, p.ID, *c.ProjetoID)
	assert.Len(t, a.contas.itens, 1)
}

func TestSincronizarAtualizaContaExistente(t *testing.T) {
	p := projetoDe("1000.00")
	a := novoAmbiente(false, p)

	a.engine.SincronizarContasProjeto(p)
	primeira := a.contaReceber(t, p.ID)
	require.NotNil(t, primeira)

	a.lancarReceita(p.ID, "400.00")
	a.engine.SincronizarContasProjeto(p)

	c := a.contaReceber(t, p.ID)
	require.NotNil(t, c)
	assert.Equal(t, primeira.ID, c.ID, "deve atualizar a mesma conta, não criar outra")
	assert.True(t, c.Valor.Equal(d("600.00")), "valor: %s", c.Valor)
	assert.Equal(t, models.ContaPendente, c.Status)
	assert.Len(t, a.contas.itens, 1)
}

func TestSincronizarQuitaConta(t *testing.T) {
	p := projetoDe("1000.00")
	a := novoAmbiente(false, p)

	a.engine.SincronizarContasProjeto(p)
	a.lancarReceita(p.ID, "400.00")
	a.engine.SincronizarContasProjeto(p)
	a.lancarReceita(p.ID, "600.00")
	a.engine.SincronizarContasProjeto(p)

	c := a.contaReceber(t, p.ID)
	require.NotNil(t, c)
	assert.Equal(t, models.ContaPago, c.Status)
	// Quitada, a conta assume o valor contratado cheio, não zero.
	assert.True(t, c.Valor.Equal(d("1000.00")), "valor: %s", c.Valor)
	assert.Len(t, a.contas.itens, 1)
}

func TestSincronizarIdempotente(t *testing.T) {
	p := projetoDe("1000.00")
	a := novoAmbiente(false, p)
	a.lancarReceita(p.ID, "250.00")

	a.engine.SincronizarContasProjeto(p)
	escritas := a.contas.escritas

	a.engine.SincronizarContasProjeto(p)
	a.engine.SincronizarContasProjeto(p)

	assert.Equal(t, escritas, a.contas.escritas, "sem mudança nas transações não pode haver novas escritas")
	assert.Len(t, a.contas.itens, 1)
}

func TestSincronizarSaldoZeroSemContaNaoMaterializa(t *testing.T) {
	p := projetoDe("500.00")
	a := novoAmbiente(false, p)
	a.lancarReceita(p.ID, "500.00")

	a.engine.SincronizarContasProjeto(p)

	assert.Empty(t, a.contas.itens, "saldo zerado sem conta existente não cria conta")
}

func TestSincronizarSobrepagamentoQuitaConta(t *testing.T) {
	p := projetoDe("500.00")
	a := novoAmbiente(false, p)

	a.engine.SincronizarContasProjeto(p)
	a.lancarReceita(p.ID, "700.00")
	a.engine.SincronizarContasProjeto(p)

	c := a.contaReceber(t, p.ID)
	require.NotNil(t, c)
	assert.Equal(t, models.ContaPago, c.Status)
	assert.True(t, c.Valor.Equal(d("500.00")))
}

func TestSincronizarIgnoraDespesas(t *testing.T) {
	p := projetoDe("1000.00")
	a := novoAmbiente(false, p)
	_ = a.transacoes.Criar(&models.Transacao{
		ProjetoID: p.ID,
		Tipo:      models.TransacaoDespesa,
		Descricao: "Vidro temperado 8mm",
		Valor:     d("300.00"),
	})

	a.engine.SincronizarContasProjeto(p)

	c := a.contaReceber(t, p.ID)
	require.NotNil(t, c)
	assert.True(t, c.Valor.Equal(d("1000.00")), "despesa não abate o saldo a receber")
}

func TestSincronizarEngoleFalhaESeCuraDepois(t *testing.T) {
	p := projetoDe("1000.00")
	a := novoAmbiente(false, p)
	a.contas.falhaCriar = errors.New("banco indisponível")

	// Não retorna erro nem entra em pânico: a mutação que disparou a
	// sincronização precisa continuar bem-sucedida.
	assert.NotPanics(t, func() { a.engine.SincronizarContasProjeto(p) })
	assert.Empty(t, a.contas.itens)

	// Na próxima mutação o sistema se auto-corrige.
	a.contas.falhaCriar = nil
	a.engine.SincronizarContasProjeto(p)
	require.NotNil(t, a.contaReceber(t, p.ID))
}

func TestSincronizarProjetoNuloNaoPanica(t *testing.T) {
	a := novoAmbiente(false)
	assert.NotPanics(t, func() { a.engine.SincronizarContasProjeto(nil) })
}

// ---- AoMarcarContaPaga ----

func TestPagamentoDeContaReceberEspelhaReceita(t *testing.T) {
	p := projetoDe("500.00")
	a := novoAmbiente(false, p)

	a.engine.SincronizarContasProjeto(p)
	c := a.contaReceber(t, p.ID)
	require.NotNil(t, c)

	// Usuário marca a conta como paga; o handler grava antes de chamar o motor.
	c.Status = models.ContaPago
	require.NoError(t, a.contas.Atualizar(c))

	a.engine.AoMarcarContaPaga(c, models.ContaPendente)

	transacoes, err := a.transacoes.ListarPorProjeto(p.ID)
	require.NoError(t, err)
	require.Len(t, transacoes, 1)
	assert.Equal(t, models.TransacaoReceita, transacoes[0].Tipo)
	assert.Equal(t, "Recebimento: "+c.Descricao, transacoes[0].Descricao)
	assert.True(t, transacoes[0].Valor.Equal(c.Valor))

	// A re-sincronização enxerga o recebimento e mantém a conta quitada.
	atual := a.contaReceber(t, p.ID)
	require.NotNil(t, atual)
	assert.Equal(t, models.ContaPago, atual.Status)
	assert.True(t, atual.Valor.Equal(d("500.00")))
}

func TestPagamentoDeContaPagarEspelhaDespesa(t *testing.T) {
	p := projetoDe("500.00")
	a := novoAmbiente(false, p)

	pid := p.ID
	c := &models.Conta{
		Tipo:      models.ContaPagar,
		Descricao: "Fornecedor de espelhos",
		Valor:     d("120.00"),
		Status:    models.ContaPago,
		ProjetoID: &pid,
	}
	require.NoError(t, a.contas.Criar(c))

	a.engine.AoMarcarContaPaga(c, models.ContaPendente)

	transacoes, err := a.transacoes.ListarPorProjeto(p.ID)
	require.NoError(t, err)
	require.Len(t, transacoes, 1)
	assert.Equal(t, models.TransacaoDespesa, transacoes[0].Tipo)
	assert.Equal(t, "Despesa: Fornecedor de espelhos", transacoes[0].Descricao)
	assert.True(t, transacoes[0].Valor.Equal(d("120.00")))
}

func TestPagamentoSemTransicaoNaoEspelha(t *testing.T) {
	p := projetoDe("500.00")
	a := novoAmbiente(false, p)

	pid := p.ID
	c := &models.Conta{Tipo: models.ContaReceber, Valor: d("500.00"), Status: models.ContaPago, ProjetoID: &pid}
	require.NoError(t, a.contas.Criar(c))

	// Já estava paga: não há transição, não há espelho.
	a.engine.AoMarcarContaPaga(c, models.ContaPago)
	assert.Empty(t, a.transacoes.itens)

	// Voltar para pendente também não espelha.
	c.Status = models.ContaPendente
	a.engine.AoMarcarContaPaga(c, models.ContaPago)
	assert.Empty(t, a.transacoes.itens)
}

func TestPagamentoDeContaAvulsaNaoEspelha(t *testing.T) {
	a := novoAmbiente(false)
	c := &models.Conta{Tipo: models.ContaPagar, Descricao: "Aluguel", Valor: d("2000.00"), Status: models.ContaPago}
	require.NoError(t, a.contas.Criar(c))

	a.engine.AoMarcarContaPaga(c, models.ContaPendente)
	assert.Empty(t, a.transacoes.itens, "conta sem projeto não gera transação")
}

func TestFlipFlopDuplicaEspelhoPorPadrao(t *testing.T) {
	p := projetoDe("500.00")
	a := novoAmbiente(false, p)

	pid := p.ID
	c := &models.Conta{Tipo: models.ContaReceber, Descricao: "Saldo a receber - Box banheiro suíte", Valor: d("500.00"), Status: models.ContaPago, ProjetoID: &pid}
	require.NoError(t, a.contas.Criar(c))

	// pago → pendente → pago gera um segundo espelho: comportamento
	// histórico, uma transação por evento de pagamento.
	a.engine.AoMarcarContaPaga(c, models.ContaPendente)
	a.engine.AoMarcarContaPaga(c, models.ContaPendente)

	transacoes, _ := a.transacoes.ListarPorProjeto(p.ID)
	assert.Len(t, transacoes, 2)
}

func TestFlipFlopComTravaEspelhoUnico(t *testing.T) {
	p := projetoDe("500.00")
	a := novoAmbiente(true, p)

	pid := p.ID
	c := &models.Conta{Tipo: models.ContaReceber, Descricao: "Saldo a receber - Box banheiro suíte", Valor: d("500.00"), Status: models.ContaPago, ProjetoID: &pid}
	require.NoError(t, a.contas.Criar(c))

	a.engine.AoMarcarContaPaga(c, models.ContaPendente)
	a.engine.AoMarcarContaPaga(c, models.ContaPendente)

	transacoes, _ := a.transacoes.ListarPorProjeto(p.ID)
	assert.Len(t, transacoes, 1, "a trava deve impedir o segundo espelho")
}

// ---- RessincronizarProjeto ----

func TestRessincronizarProjetoSincroniza(t *testing.T) {
	p := projetoDe("1000.00")
	a := novoAmbiente(false, p)

	a.engine.RessincronizarProjeto(p.ID)

	c := a.contaReceber(t, p.ID)
	require.NotNil(t, c)
	assert.True(t, c.Valor.Equal(d("1000.00")))
}

func TestRessincronizarProjetoInexistenteLogaENaoPanica(t *testing.T) {
	var buf bytes.Buffer
	pf := &projetosFake{itens: map[uint]*models.Projeto{}}
	engine := NewEngine(&contasFake{}, &transacoesFake{}, pf, zerolog.New(&buf), false)

	assert.NotPanics(t, func() { engine.RessincronizarProjeto(99) })
	assert.Contains(t, buf.String(), "falha ao recarregar projeto")
}

// ---- GarantirTransacaoParaContaPaga ----

func TestGarantirTransacaoCriaUmaVez(t *testing.T) {
	p := projetoDe("500.00")
	a := novoAmbiente(false, p)

	pid := p.ID
	c := &models.Conta{Tipo: models.ContaReceber, Descricao: "Saldo a receber - Box banheiro suíte", Valor: d("500.00"), Status: models.ContaPago, ProjetoID: &pid}
	require.NoError(t, a.contas.Criar(c))

	primeira, err := a.engine.GarantirTransacaoParaContaPaga(c)
	require.NoError(t, err)
	require.NotNil(t, primeira)

	segunda, err := a.engine.GarantirTransacaoParaContaPaga(c)
	require.NoError(t, err)
	require.NotNil(t, segunda)

	assert.Equal(t, primeira.ID, segunda.ID, "a segunda chamada devolve a transação existente")
	transacoes, _ := a.transacoes.ListarPorProjeto(p.ID)
	assert.Len(t, transacoes, 1)
}

func TestGarantirTransacaoReutilizaEspelhoDoPagamento(t *testing.T) {
	p := projetoDe("500.00")
	a := novoAmbiente(false, p)

	pid := p.ID
	c := &models.Conta{Tipo: models.ContaReceber, Descricao: "Saldo a receber - Box banheiro suíte", Valor: d("500.00"), Status: models.ContaPago, ProjetoID: &pid}
	require.NoError(t, a.contas.Criar(c))

	a.engine.AoMarcarContaPaga(c, models.ContaPendente)
	transacoes, _ := a.transacoes.ListarPorProjeto(p.ID)
	require.Len(t, transacoes, 1)

	reparo, err := a.engine.GarantirTransacaoParaContaPaga(c)
	require.NoError(t, err)
	assert.Equal(t, transacoes[0].ID, reparo.ID)
	transacoes, _ = a.transacoes.ListarPorProjeto(p.ID)
	assert.Len(t, transacoes, 1)
}

func TestGarantirTransacaoContaNaoPaga(t *testing.T) {
	a := novoAmbiente(false)
	pid := uint(1)
	c := &models.Conta{Tipo: models.ContaReceber, Valor: d("10.00"), Status: models.ContaPendente, ProjetoID: &pid}

	_, err := a.engine.GarantirTransacaoParaContaPaga(c)
	assert.ErrorIs(t, err, ErrContaNaoPaga)
}

func TestGarantirTransacaoContaSemProjeto(t *testing.T) {
	a := novoAmbiente(false)
	c := &models.Conta{Tipo: models.ContaPagar, Valor: d("10.00"), Status: models.ContaPago}

	_, err := a.engine.GarantirTransacaoParaContaPaga(c)
	assert.ErrorIs(t, err, ErrContaSemProjeto)
}

// ---- cenário completo do fluxo ----

func TestCenarioCompletoDoProjeto(t *testing.T) {
	p := projetoDe("1000.00")
	a := novoAmbiente(false, p)

	// Sem transações: conta pendente de 1000.
	a.engine.SincronizarContasProjeto(p)
	c := a.contaReceber(t, p.ID)
	require.NotNil(t, c)
	assert.True(t, c.Valor.Equal(d("1000.00")))

	// Receita de 400: mesma conta cai para 600.
	a.lancarReceita(p.ID, "400.00")
	a.engine.SincronizarContasProjeto(p)
	c = a.contaReceber(t, p.ID)
	assert.True(t, c.Valor.Equal(d("600.00")))

	// Receita de 600: conta quitada com o valor contratado.
	a.lancarReceita(p.ID, "600.00")
	a.engine.SincronizarContasProjeto(p)
	c = a.contaReceber(t, p.ID)
	assert.Equal(t, models.ContaPago, c.Status)
	assert.True(t, c.Valor.Equal(d("1000.00")))

	// Marcar "pago" de novo sem transição: nenhum espelho.
	a.engine.AoMarcarContaPaga(c, models.ContaPago)
	transacoes, _ := a.transacoes.ListarPorProjeto(p.ID)
	assert.Len(t, transacoes, 2)
}
