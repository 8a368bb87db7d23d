package serviceorder

// Status is a service-order status as the client portal reports it. The
// canonical values below are the ones the workflow reasons about; any other
// string is carried through untouched and treated as non-blocking.
type Status string

const (
	StatusEmAndamento        Status = "EM ANDAMENTO"
	StatusAguardandoPecas    Status = "AGUARDANDO PECAS"
	StatusEmOrcamento        Status = "EM ORCAMENTO"
	StatusRecusadaConferida  Status = "RECUSADA - CONFERIDA"
	StatusTerminadaConferida Status = "TERMINADA - CONFERIDA"
	StatusTerminadaExpedida  Status = "TERMINADA - EXPEDIDA"
	StatusTerminadaArquivada Status = "TERMINADA - ARQUIVADA"
	StatusCancelada          Status = "OS CANCELADA"
)

// blockingStatuses is the single canonical terminal set. The old system kept
// copies of this list in several files with diverging whitespace; every
// blocking decision must read this table and nothing else.
var blockingStatuses = map[Status]struct{}{
	StatusRecusadaConferida:  {},
	StatusTerminadaConferida: {},
	StatusTerminadaExpedida:  {},
	StatusTerminadaArquivada: {},
	StatusCancelada:          {},
}

// BlocksApontamento reports whether the order status permanently blocks new
// apontamentos. The match is exact, on the canonical stored string. Unknown
// statuses do not block: the portal introduces status strings faster than we
// learn about them, and refusing work on an unrecognized status would halt
// the shop floor. That open-world default is policy, not an accident.
func (s Status) BlocksApontamento() bool {
	_, blocked := blockingStatuses[s]
	return blocked
}

// Known reports whether the status is one of the canonical values.
func (s Status) Known() bool {
	switch s {
	case StatusEmAndamento, StatusAguardandoPecas, StatusEmOrcamento,
		StatusRecusadaConferida, StatusTerminadaConferida,
		StatusTerminadaExpedida, StatusTerminadaArquivada, StatusCancelada:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
