package service

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/dinedash-api/pkg/printer"
)

type failingPrinter struct{}

func (failingPrinter) Print(context.Context, []byte) error { return errors.New("paper out") }
func (failingPrinter) Close() error                        { return nil }
func (failingPrinter) IsConnected() bool                   { return false }

func TestPrinterService_PrintOrder(t *testing.T) {
	env := newTestEnv(t)
	env.setHotel(t, "Lakeview", "gm@lakeview.test")
	res, err := env.orders().Submit(context.Background(), SubmitOrderInput{
		TableID: "t4",
		Items:   []CartLine{{MenuItemID: "1", Quantity: 2, Note: "less spicy"}},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	dir := t.TempDir()
	p, err := printer.NewPrinterFromConfig(printer.TypeFile, dir)
	if err != nil {
		t.Fatalf("NewPrinterFromConfig() error = %v", err)
	}
	svc := NewPrinterService(p, printer.TypeFile, printer.Width58mm, env.store, env.hotel(), time.UTC)

	job, err := svc.PrintOrder(context.Background(), res.Order.ID)
	if err != nil {
		t.Fatalf("PrintOrder() error = %v", err)
	}
	if !job.Printed {
		t.Error("job not printed")
	}
	for _, want := range []string{"Lakeview", "Table 4", "616.00", "Service charge:"} {
		if !strings.Contains(job.Preview, want) {
			t.Errorf("preview missing %q:\n%s", want, job.Preview)
		}
	}
	files, _ := os.ReadDir(dir)
	if len(files) != 1 {
		t.Errorf("spooled jobs = %d, want 1", len(files))
	}

	kot, err := svc.PrintKOT(context.Background(), res.Order.ID)
	if err != nil {
		t.Fatalf("PrintKOT() error = %v", err)
	}
	if strings.Contains(kot.Preview, "616.00") || strings.Contains(kot.Preview, "TOTAL") {
		t.Errorf("kitchen copy shows prices:\n%s", kot.Preview)
	}
	if !strings.Contains(kot.Preview, "> less spicy") {
		t.Errorf("kitchen copy missing note:\n%s", kot.Preview)
	}

	if _, err := svc.PrintOrder(context.Background(), "ORD-404"); errCode(t, err) != http.StatusNotFound {
		t.Errorf("unknown order: err = %v", err)
	}
}

func TestPrinterService_Disabled(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPrinterService(printer.NewNullPrinter(), printer.TypeNone, 0, env.store, env.hotel(), nil)

	job, err := svc.TestPrint(context.Background())
	if err != nil {
		t.Fatalf("TestPrint() error = %v", err)
	}
	if job.Printed || job.Preview == "" {
		t.Errorf("job = %+v", job)
	}
	if st := svc.Status(); st.Configured || st.Width != printer.Width58mm {
		t.Errorf("Status() = %+v", st)
	}
}

func TestPrinterService_PrintFailureKeepsReceipt(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPrinterService(failingPrinter{}, printer.TypeNetwork, printer.Width80mm, env.store, env.hotel(), time.UTC)

	job, err := svc.TestPrint(context.Background())
	if err == nil {
		t.Fatal("expected a print error")
	}
	if job == nil || job.Receipt == nil || job.Printed {
		t.Errorf("job = %+v", job)
	}
}

func TestPrinterService_PrintFolio(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b, err := env.hotel().CheckIn(ctx, "r201", StayInput{GuestName: "Folio Guest", Phone: "5", Nights: 2})
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	svc := NewPrinterService(printer.NewNullPrinter(), printer.TypeNone, printer.Width80mm, env.store, env.hotel(), time.UTC)

	job, err := svc.PrintFolio(ctx, b.ID)
	if err != nil {
		t.Fatalf("PrintFolio() error = %v", err)
	}
	for _, want := range []string{"GUEST FOLIO", "Room 201", "Room charges (2 nights)", "CGST:", "9450.00"} {
		if !strings.Contains(job.Preview, want) {
			t.Errorf("preview missing %q:\n%s", want, job.Preview)
		}
	}
}
