package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concilia-dev/concilia/internal/model"
)

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.NotNil(t, r.Get("client"))
	assert.NotNil(t, r.Get("CNCJ"), "lookup is case-insensitive")
	assert.NotNil(t, r.Get("general"))
	assert.Nil(t, r.Get("unknown"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CncjParser{})
	assert.Panics(t, func() { r.Register(&CncjParser{}) })
}

func TestClientParser(t *testing.T) {
	input := "Numéro,Intitulé\n" +
		"101,Capital\n" +
		",ligne vide\n" +
		"4110000,Clients\n"

	p := &ClientParser{NumberColumn: 0, TitleColumn: 1, HasHeader: true}
	accounts, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, accounts, 2, "rows without a number are skipped")

	assert.Equal(t, "101-0", accounts[0].ID)
	assert.Equal(t, "101", accounts[0].Number)
	assert.Equal(t, "Capital", accounts[0].Title)
	assert.Equal(t, model.SourceClient, accounts[0].Source)

	assert.Equal(t, "4110000-2", accounts[1].ID, "ID keeps the original row index")
}

func TestClientParser_CustomColumns(t *testing.T) {
	p := &ClientParser{NumberColumn: 2, TitleColumn: 0, HasHeader: false}
	accounts, err := p.Parse(strings.NewReader("Capital,x,101\nClients,y,411\n"))
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "101", accounts[0].Number)
	assert.Equal(t, "Capital", accounts[0].Title)
}

func TestClientParser_TooFewFields(t *testing.T) {
	p := &ClientParser{NumberColumn: 0, TitleColumn: 1, HasHeader: false}
	_, err := p.Parse(strings.NewReader("101\n"))
	require.Error(t, err)
}

func TestCncjParser(t *testing.T) {
	input := "code,libellé\n" +
		"4110000,Clients homologués\n" +
		"4110001,\n"

	accounts, err := (&CncjParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "4110000", accounts[0].Number)
	assert.Equal(t, "Clients homologués", accounts[0].Title)
	assert.Equal(t, model.SourceCncj, accounts[0].Source)
	assert.Empty(t, accounts[1].Title)
}

func TestGeneralParser(t *testing.T) {
	input := "importId,code,name,category,taxScheme\n" +
		"g-1,4110000,Clients,tiers,standard\n" +
		"g-2,6060000,Fournitures,charges,\n"

	accounts, err := (&GeneralParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	a := accounts[0]
	assert.Equal(t, "4110000", a.Number)
	assert.Equal(t, "Clients", a.Title)
	assert.Equal(t, model.SourceGeneral, a.Source)
	assert.Equal(t, "tiers", a.RawData["category"])
	assert.Equal(t, "4110000", a.RawData["code"], "raw row keeps identity fields; inheritance strips them later")
}

func TestGeneralParser_NoCodeColumn(t *testing.T) {
	_, err := (&GeneralParser{}).Parse(strings.NewReader("name,category\nClients,tiers\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code")
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	importPath := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "clients.csv"), []byte("a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "notes.txt"), []byte("x"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1, "only CSV files are listed")
	assert.Equal(t, "clients.csv", files[0].Name)
}

func TestScan_NoImportDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cncj.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,libellé\n4110000,Clients\n"), 0o644))

	accounts, err := ParseFile(&CncjParser{}, path)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "4110000", accounts[0].Number)
}
