package faceRepository

const (
	querySchema = `
CREATE TABLE IF NOT EXISTS face_encodings (
    rollno     BIGINT PRIMARY KEY CHECK (rollno >= 0),
    encoding   DOUBLE PRECISION[] NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

	queryUpsertEncoding = `
INSERT INTO face_encodings (rollno, encoding, updated_at)
VALUES (:rollno, :encoding, :updated_at)
ON CONFLICT (rollno) DO UPDATE
SET encoding = EXCLUDED.encoding,
    updated_at = EXCLUDED.updated_at`

	queryLoadEncodings = `
SELECT rollno, encoding
FROM face_encodings
ORDER BY rollno`
)
