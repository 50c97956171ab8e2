package prescription

import (
	"testing"
	"time"
)

func testPrescription() *Prescription {
	practID := int64(3)
	p := &Prescription{
		ID:             7,
		PatientID:      7,
		PractitionerID: &practID,
		Date:           time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		Active:         true,
	}
	p.Drugs[0] = &Drug{Name: "ibuprofeno", Dose: "400mg", Frequency: "cada 8 horas", Duration: "5 días", Route: "Oral"}
	return p
}

func TestPopulatedDrugs(t *testing.T) {
	p := &Prescription{}
	if got := p.PopulatedDrugs(); len(got) != 0 {
		t.Errorf("empty prescription has %d drugs", len(got))
	}

	p.Drugs[0] = &Drug{Name: "ibuprofeno"}
	p.Drugs[1] = &Drug{Name: "omeprazol"}
	p.Drugs[3] = &Drug{Name: "loratadina"} // gap at slot 3

	got := p.PopulatedDrugs()
	if len(got) != 3 {
		t.Fatalf("got %d drugs, want 3", len(got))
	}
	wantSlots := []int{1, 2, 4}
	for i, pd := range got {
		if pd.Slot != wantSlots[i] {
			t.Errorf("drug %d in slot %d, want %d", i, pd.Slot, wantSlots[i])
		}
	}
}

func TestPopulatedDrugs_NamelessSlotDoesNotExist(t *testing.T) {
	p := &Prescription{}
	p.Drugs[0] = &Drug{Dose: "400mg"} // no name
	if got := p.PopulatedDrugs(); len(got) != 0 {
		t.Errorf("slot without a name counted as populated: %v", got)
	}
}

func TestFHIRStatus(t *testing.T) {
	p := testPrescription()
	if p.FHIRStatus() != "active" {
		t.Errorf("status = %s", p.FHIRStatus())
	}
	p.Active = false
	if p.FHIRStatus() != "cancelled" {
		t.Errorf("status = %s", p.FHIRStatus())
	}
}

func TestDrugFHIRID(t *testing.T) {
	if got := testPrescription().DrugFHIRID(2); got != "medreq-7-2" {
		t.Errorf("DrugFHIRID = %s", got)
	}
}
