package db

const (
	deleteGeneration = `DELETE FROM generations WHERE generation_id = ?;`
	deleteDetection  = `DELETE FROM detections WHERE detection_id = ?;`
)

func (db Sqlite) DeleteGeneration(id string) error {
	res, err := db.ExecContext(db.context, deleteGeneration, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db Sqlite) DeleteDetection(id string) error {
	res, err := db.ExecContext(db.context, deleteDetection, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
