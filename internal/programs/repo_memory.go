package programs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/matching"
)

// MemoryRepo stores the program catalog in memory and is safe for
// concurrent use. The dev build seeds it with a few well-known programs.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]Program
	casesBy map[string][]SuccessCase
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]Program),
		casesBy: make(map[string][]SuccessCase),
	}
}

// NewSeededMemoryRepo constructs a MemoryRepo preloaded with reference
// programs for local development.
func NewSeededMemoryRepo() *MemoryRepo {
	repo := NewMemoryRepo()
	now := time.Now().UTC()

	jizokuka := Program{
		ID:               "jizokuka-2025",
		Name:             "小規模事業者持続化補助金",
		Summary:          "小規模事業者の販路開拓や生産性向上の取組を支援する補助金",
		TargetSizes:      []string{matching.SizeSmall},
		Requirements: []matching.Requirement{
			{Text: "商工会議所の管轄地域で事業を営んでいること", Mandatory: true},
			{Text: "経営計画書を作成していること", Mandatory: true},
		},
		CriteriaKeywords: []string{"販路開拓", "生産性向上", "地域活性化"},
		MinAmount:        500_000,
		MaxAmount:        2_000_000,
		CreatedAt:        now,
	}
	monodukuri := Program{
		ID:               "monodukuri-2025",
		Name:             "ものづくり補助金",
		Summary:          "中小企業の革新的な製品・サービス開発や生産プロセス改善を支援する補助金",
		TargetSizes:      []string{matching.SizeSME},
		TargetIndustries: []string{"製造業", "情報通信業"},
		Requirements: []matching.Requirement{
			{Text: "3〜5年の事業計画を策定すること", Mandatory: true},
			{Text: "付加価値額を年率3%以上向上させる計画であること", Mandatory: true},
		},
		CriteriaKeywords: []string{"革新性", "生産性向上", "DX", "設備投資"},
		MinAmount:        1_000_000,
		MaxAmount:        12_500_000,
		CreatedAt:        now,
	}
	itdounyu := Program{
		ID:               "it-dounyu-2025",
		Name:             "IT導入補助金",
		Summary:          "中小企業・小規模事業者のITツール導入を支援する補助金",
		TargetSizes:      []string{matching.SizeSME},
		Requirements: []matching.Requirement{
			{Text: "IT導入支援事業者と共同で申請すること", Mandatory: true},
		},
		CriteriaKeywords: []string{"IT導入", "業務効率化", "DX", "クラウド"},
		MinAmount:        300_000,
		MaxAmount:        4_500_000,
		CreatedAt:        now,
	}

	for _, p := range []Program{jizokuka, monodukuri, itdounyu} {
		repo.byID[p.ID] = p
	}
	repo.casesBy[monodukuri.ID] = []SuccessCase{
		{
			ID:             "case-mono-001",
			ProgramID:      monodukuri.ID,
			Title:          "IoT活用による金属加工ラインの生産性向上",
			KeyPhrases:     []string{"DX", "IoT", "生産性向上"},
			SuccessFactors: []string{"明確な数値目標", "外部専門家の活用"},
			CreatedAt:      now,
		},
		{
			ID:             "case-mono-002",
			ProgramID:      monodukuri.ID,
			Title:          "AI検品システムの開発による不良率低減",
			KeyPhrases:     []string{"DX", "AI", "品質向上"},
			SuccessFactors: []string{"明確な数値目標"},
			CreatedAt:      now,
		},
	}
	return repo
}

// List returns programs sorted by name, with limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Program, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []Program{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// GetByID returns a program by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, programID string) (Program, error) {
	if err := ctx.Err(); err != nil {
		return Program{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[programID]
	if !ok {
		return Program{}, ErrNotFound
	}
	return p, nil
}

// ListSuccessCases returns the success cases recorded for a program.
func (r *MemoryRepo) ListSuccessCases(ctx context.Context, programID string) ([]SuccessCase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.byID[programID]; !ok {
		return nil, ErrNotFound
	}
	return append([]SuccessCase{}, r.casesBy[programID]...), nil
}

// Put inserts or replaces a program. Used by tests and seeding.
func (r *MemoryRepo) Put(p Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
}

// PutSuccessCase appends a success case for a program.
func (r *MemoryRepo) PutSuccessCase(c SuccessCase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.casesBy[c.ProgramID] = append(r.casesBy[c.ProgramID], c)
}
