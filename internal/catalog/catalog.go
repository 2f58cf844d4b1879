// Package catalog holds the fixed set of site sections served by the
// assistant. Content is built once at startup and never mutated.
package catalog

import (
	"strings"

	"github.com/spinfactor/spinbot/internal/domain"
)

// Catalog is an immutable section lookup.
type Catalog struct {
	sections map[string]domain.Section
	order    []string
}

// New builds the catalog with the full site content.
func New() *Catalog {
	sections := []domain.Section{
		{
			ID:          "siamo",
			Label:       "SIAMO",
			Title:       "Chi siamo",
			Image:       "https://images.unsplash.com/photo-1521791136064-7986c2920216?auto=format&fit=crop&w=1200&q=80",
			Description: "Spin Factor accompagna aziende e persone con progetti di trasformazione digitale e culturale.",
			Hints:       []string{"Come nasce Spin Factor?", "Quali valori guidano il team?"},
		},
		{
			ID:          "facciamo",
			Label:       "FACCIAMO",
			Title:       "Cosa facciamo",
			Image:       "https://images.unsplash.com/photo-1454165804606-c3d57bc86b40?auto=format&fit=crop&w=1200&q=80",
			Description: "Costruiamo strategie, prodotti digitali e percorsi di innovazione ad alto impatto.",
			Hints:       []string{"Quali servizi offrite?", "A chi vi rivolgete?"},
		},
		{
			ID:          "diciamo",
			Label:       "DICIAMO",
			Title:       "Cosa diciamo",
			Image:       "https://images.unsplash.com/photo-1515169067868-5387ec356754?auto=format&fit=crop&w=1200&q=80",
			Description: "Condividiamo idee, insight e point of view sul futuro del lavoro e della tecnologia.",
			Hints:       []string{"Dove trovo i vostri contenuti?", "Quali temi trattate?"},
		},
		{
			ID:          "organizziamo",
			Label:       "ORGANIZZIAMO",
			Title:       "Cosa organizziamo",
			Image:       "https://images.unsplash.com/photo-1511578314322-379afb476865?auto=format&fit=crop&w=1200&q=80",
			Description: "Eventi, workshop e format esperienziali per attivare persone e comunità.",
			Hints:       []string{"Organizzate workshop su misura?", "Quali eventi fate durante l'anno?"},
		},
		{
			ID:          "tiberio",
			Label:       "TIBERIO",
			Title:       "Tiberio",
			Image:       "https://images.unsplash.com/photo-1485827404703-89b55fcc595e?auto=format&fit=crop&w=1200&q=80",
			Description: "Tiberio è il framework che connette dati, processi e intelligenza artificiale in modo umano.",
			Hints:       []string{"Come funziona Tiberio?", "Qual è il vantaggio competitivo?"},
		},
		{
			ID:          "human-data",
			Label:       "HUMAN DATA",
			Title:       "Human Data",
			Image:       "https://images.unsplash.com/photo-1551288049-bebda4e38f71?auto=format&fit=crop&w=1200&q=80",
			Description: "Human Data unisce qualità del dato e comprensione del comportamento per decisioni migliori.",
			Hints:       []string{"Quali dati usate?", "Come garantite etica e privacy?"},
		},
		{
			ID:          "contatti",
			Label:       "CONTATTI",
			Title:       "Contatti",
			Image:       "https://images.unsplash.com/photo-1486312338219-ce68e2c6b7d3?auto=format&fit=crop&w=1200&q=80",
			Description: "Scrivici a hello@spinfactor.it o chiamaci: +39 02 1234 5678. Compila il form e ti richiamiamo noi.",
			Hints:       []string{"Voglio un preventivo", "Parliamo del mio progetto"},
		},
	}

	c := &Catalog{sections: make(map[string]domain.Section, len(sections))}
	for _, s := range sections {
		c.sections[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	return c
}

// Resolve returns the section for id, or domain.ErrSectionNotFound when
// id is outside the fixed set.
func (c *Catalog) Resolve(id string) (domain.Section, error) {
	s, ok := c.sections[id]
	if !ok {
		return domain.Section{}, domain.ErrSectionNotFound
	}
	return s, nil
}

// IDs returns section ids in display order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Labels returns the display labels in the same order as IDs.
func (c *Catalog) Labels() []string {
	out := make([]string, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.sections[id].Label)
	}
	return out
}

// LabelList renders the labels as an Italian enumeration, e.g.
// "SIAMO, FACCIAMO e CONTATTI".
func (c *Catalog) LabelList() string {
	labels := c.Labels()
	if len(labels) == 0 {
		return ""
	}
	if len(labels) == 1 {
		return labels[0]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " e " + labels[len(labels)-1]
}
