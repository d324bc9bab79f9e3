package storage

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/conorfennell/braingym/internal/domain"
)

// InsertWorkout logs a workout together with its exercises.
func (db *DB) InsertWorkout(w domain.Workout) error {
	_, err := db.conn.Exec(`
		INSERT INTO workouts (id, name, target, date, started_at, est_minutes, session_rpe)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, w.ID.String(), w.Name, w.Target, w.Date, w.StartedAt, w.EstMinutes, w.SessionRPE)
	if err != nil {
		return fmt.Errorf("failed to insert workout %s: %w", w.Name, err)
	}

	for _, e := range w.Exercises {
		_, err := db.conn.Exec(`
			INSERT INTO exercises (workout_id, name, sets, reps, rpe)
			VALUES (?, ?, ?, ?, ?)
		`, w.ID.String(), e.Name, e.Sets, e.Reps, e.RPE)
		if err != nil {
			return fmt.Errorf("failed to insert exercise %q for workout %s: %w", e.Name, w.ID, err)
		}
	}
	return nil
}

// ListWorkouts retrieves logged workouts, newest first.
func (db *DB) ListWorkouts() ([]domain.Workout, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, target, date, started_at, est_minutes, session_rpe
		FROM workouts ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []domain.Workout
	for rows.Next() {
		var w domain.Workout
		var id string
		if err := rows.Scan(&id, &w.Name, &w.Target, &w.Date, &w.StartedAt, &w.EstMinutes, &w.SessionRPE); err != nil {
			return nil, fmt.Errorf("failed to scan workout row: %w", err)
		}
		if w.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse workout id %q: %w", id, err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workout rows: %w", err)
	}

	for i := range workouts {
		if workouts[i].Exercises, err = db.exercisesByWorkout(workouts[i].ID); err != nil {
			return nil, err
		}
	}
	return workouts, nil
}

// DeleteWorkout removes a workout and its exercises.
func (db *DB) DeleteWorkout(id uuid.UUID) error {
	if _, err := db.conn.Exec(`DELETE FROM exercises WHERE workout_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete exercises of workout %s: %w", id, err)
	}
	if _, err := db.conn.Exec(`DELETE FROM workouts WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete workout %s: %w", id, err)
	}
	return nil
}

func (db *DB) exercisesByWorkout(workoutID uuid.UUID) ([]domain.Exercise, error) {
	rows, err := db.conn.Query(`
		SELECT name, sets, reps, rpe FROM exercises WHERE workout_id = ? ORDER BY id
	`, workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get exercises for workout %s: %w", workoutID, err)
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		var e domain.Exercise
		if err := rows.Scan(&e.Name, &e.Sets, &e.Reps, &e.RPE); err != nil {
			return nil, fmt.Errorf("failed to scan exercise row: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exercise rows: %w", err)
	}
	return exercises, nil
}
