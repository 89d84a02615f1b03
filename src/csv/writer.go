package csv

import (
	"encoding/csv"
	"io"

	"github.com/BielosX/wombat/poke-search/src/parquet"
	"github.com/BielosX/wombat/poke-search/src/utils"
	"github.com/xitongsys/parquet-go-source/buffer"
)

// PokemonWriter writes parquet.PokemonRow values as CSV, using the parquet
// column names as the header.
type PokemonWriter struct {
	buffer *buffer.BufferFile
	writer *csv.Writer
}

const InitialCapacity = 256 * 1024

func NewPokemonWriter() *PokemonWriter {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	return &PokemonWriter{
		buffer: bufferFile,
		writer: csv.NewWriter(bufferFile),
	}
}

func (w *PokemonWriter) WriteHeader() error {
	return w.writer.Write(utils.ColumnNames(parquet.PokemonRow{}, "parquet"))
}

func (w *PokemonWriter) Write(row parquet.PokemonRow) error {
	return w.writer.Write(utils.FieldValues(row))
}

func (w *PokemonWriter) Finish() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return err
	}
	_, err := w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *PokemonWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *PokemonWriter) BufferReader() io.Reader {
	return w.buffer
}
