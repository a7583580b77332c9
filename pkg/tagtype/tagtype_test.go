package tagtype

import "testing"

func TestWireValues(t *testing.T) {
	cases := []struct {
		typ  Type
		want uint16
	}{
		{Undefined, 0},
		{LegacyEM410X, 1},
		{LegacyNTAG216, 8},
		{EM410X, 100},
		{MifareMini, 1000},
		{Mifare4K, 1003},
		{NTAG213, 1100},
		{UltralightEV0, 1103},
		{NTAG212, 1108},
	}
	for _, c := range cases {
		if uint16(c.typ) != c.want {
			t.Errorf("%s = %d, want %d", c.typ, uint16(c.typ), c.want)
		}
	}
}

func TestUpgrade(t *testing.T) {
	if got := LegacyMifare1K.Upgrade(); got != Mifare1K {
		t.Fatalf("LegacyMifare1K upgrades to %v", got)
	}
	if got := Mifare1K.Upgrade(); got != Mifare1K {
		t.Fatalf("Mifare1K should pass through, got %v", got)
	}
}

func TestClassification(t *testing.T) {
	if !EM410X.IsLF() || EM410X.IsHF() {
		t.Fatal("EM410X should be LF only")
	}
	if !Mifare1K.IsHF() || Mifare1K.IsLF() {
		t.Fatal("Mifare1K should be HF only")
	}
	if !LegacyMifare4K.IsMifareClassic() {
		t.Fatal("legacy 4K value should classify as MIFARE Classic")
	}
	if NTAG215.IsMifareClassic() {
		t.Fatal("NTAG 215 is not a Classic tag")
	}
	if got := Undefined.Sense(); got != SenseNone {
		t.Fatalf("Undefined sense = %v", got)
	}
	if got := LegacyEM410X.Sense(); got != SenseLF {
		t.Fatalf("legacy EM410X sense = %v", got)
	}
}

func TestGeometry(t *testing.T) {
	if got := Mifare1K.Sectors(); got != 16 {
		t.Fatalf("1K sectors = %d", got)
	}
	if got := Mifare4K.FirstBlock(32); got != 128 {
		t.Fatalf("first block of sector 32 = %d", got)
	}
	if got := Mifare4K.FirstBlock(39); got != 128+7*16 {
		t.Fatalf("first block of sector 39 = %d", got)
	}
	if got := Mifare4K.BlocksInSector(39); got != 16 {
		t.Fatalf("blocks in sector 39 = %d", got)
	}
	if got := Mifare1K.BlocksInSector(3); got != 4 {
		t.Fatalf("blocks in sector 3 = %d", got)
	}
	if got := NTAG213.Sectors(); got != 0 {
		t.Fatalf("NTAG sectors = %d", got)
	}
}
