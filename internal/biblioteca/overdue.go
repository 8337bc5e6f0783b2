package biblioteca

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const fechaLayout = "2006-01-02"

// StartOverdueSweep schedules a midnight job that reports active loans past
// their due date. The sweep only logs; returns are still explicit API calls.
// Callers should Stop the returned scheduler on shutdown.
func StartOverdueSweep(repo Repository) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		reportOverdue(repo, time.Now())
	})
	if err != nil {
		log.Printf("Overdue sweep not scheduled: %v", err)
		return c
	}
	c.Start()
	return c
}

// reportOverdue logs every active loan whose due date is before now and
// returns how many it found. Dates compare lexically as YYYY-MM-DD.
func reportOverdue(repo Repository, now time.Time) int {
	hoy := now.Format(fechaLayout)
	vencidos := 0
	for _, p := range repo.Prestamos() {
		if p.Activo && p.FechaDevolucion < hoy {
			vencidos++
			log.Printf("Préstamo %d vencido: libro %d debía volver el %s", p.ID, p.LibroID, p.FechaDevolucion)
		}
	}
	if vencidos > 0 {
		log.Printf("%d préstamos vencidos en total", vencidos)
	}
	return vencidos
}
