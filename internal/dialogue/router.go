// Package dialogue implements the question-routing logic of the
// assistant: incoming free text is classified into an escalation, a
// section-aware reply, or a generic orientation reply.
package dialogue

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spinfactor/spinbot/internal/catalog"
)

// escalationKeywords are substrings marking commercial or quantitative
// intent. Matching is deliberately crude: lower-cased substring search,
// no tokenization, no negation handling. Both inflections of "costare"
// are listed because there is no stemming.
var escalationKeywords = []string{"prezzo", "costo", "costa", "preventivo", "numeri", "roi", "dati"}

// EscalationReplies is the fixed pool drawn from when a question
// escalates. The members are interchangeable; the choice is random.
var EscalationReplies = []string{
	"Questa è una richiesta super interessante 😄 Per numeri e dettagli precisi possiamo attivare subito il team commerciale: trovi tutti i contatti qui sotto.",
	"Ottima domanda! Per i dati specifici ti mettiamo in contatto con Spin Factor così ricevi una proposta su misura.",
	"Ti rispondo volentieri: per metriche e costi conviene un rapido confronto diretto. Ti mostro i contatti 👇",
	"Per queste informazioni puntuali ci piace preparare una risposta personalizzata: scrivici e ti ricontattiamo in tempi rapidissimi.",
	"Possiamo entrare nel dettaglio con un preventivo ad hoc: ti lascio subito i riferimenti del team.",
}

// Reply is the routing outcome. Escalate signals commercial intent; the
// caller decides whether to act on it.
type Reply struct {
	Answer   string `json:"answer"`
	Escalate bool   `json:"escalate,omitempty"`
}

// Router classifies questions. It holds no per-call state.
type Router struct {
	catalog *catalog.Catalog
	pick    func(n int) int
}

// New creates a router drawing escalation replies with math/rand.
func New(c *catalog.Catalog) *Router {
	return &Router{catalog: c, pick: rand.IntN}
}

// NewWithPick creates a router with an injected selection function, used
// by tests to make the pool draw deterministic.
func NewWithPick(c *catalog.Catalog, pick func(n int) int) *Router {
	return &Router{catalog: c, pick: pick}
}

// Route decides the reply for a question. Priority order: escalation
// keyword match, then section-aware reply, then generic fallback. First
// match wins.
func (r *Router) Route(question, activeSection string) Reply {
	text := strings.ToLower(question)

	for _, kw := range escalationKeywords {
		if strings.Contains(text, kw) {
			return Reply{
				Answer:   EscalationReplies[r.pick(len(EscalationReplies))],
				Escalate: true,
			}
		}
	}

	if activeSection != "" {
		if section, err := r.catalog.Resolve(activeSection); err == nil {
			return Reply{
				Answer: fmt.Sprintf("Certo! Ti racconto di più su %s. Se vuoi posso anche proporti esempi concreti.", section.Title),
			}
		}
	}

	return Reply{
		Answer: fmt.Sprintf("Posso guidarti tra %s. Da cosa vuoi partire?", r.catalog.LabelList()),
	}
}
