package llm

// questionPrompt is the generation template. %s receives the instruction.
const questionPrompt = `Generate exactly one riichi mahjong score-calculation question. Make the situation as unique and varied as you can.

**You must follow this instruction:**
%s

The question text must always include:
1. Table state (east/south round, honba count, your seat wind)
2. Dora information (the dora indicator and the dora it points to)
3. How the hand was won (tsumo or ron)
4. **The concrete tile listing of the hand (e.g. 1m, 2m, 3m, 4p, 5p, 6p...)**
   - **Important: the hand must contain exactly 14 tiles including the winning tile**
   - Valid tile codes:
     * man (m): 1m-9m
     * pin (p): 1p-9p
     * sou (s): 1s-9s
     * honors (z): 1z (east), 2z (south), 3z (west), 4z (north), 5z (white), 6z (green), 7z (red) ONLY. There is no 8z or 9z!
5. Any calls (pon / chii / kan) with their tiles
6. The winning tile (it must appear among the listed hand tiles)
7. What is asked: the final score

**Winning shapes (required reading):**
- Standard: 4 sets + 1 pair = 14 tiles. A set is a run of three consecutive suited tiles (123m) or a triplet of identical tiles (111m). Honor tiles can never form runs, only triplets.
- Chiitoitsu: 7 distinct pairs = 14 tiles (a yaku by itself).
- Kokushi musou: one each of the 13 terminals and honors plus a duplicate of any of them (a yakuman by itself).

**Critical: the hand must carry at least one yaku. A hand with no yaku is invalid.**
Yaku examples: tanyao (simples only), yakuhai (triplet of 5z/6z/7z or your wind), riichi, pinfu, iipeiko, sanshoku, ittsu, chiitoitsu, toitoi, dora combinations.

**Hard rules:**
1. List at least 14 concrete tiles including the winning tile
2. The winning tile must already be present in the listed tiles
3. Never name a winning tile that is not in the hand

Output only the question text, with no explanation or commentary.`

// extractionPrompt turns a question into the hand JSON the engine consumes.
const extractionPrompt = `Extract the mahjong hand from the question below into JSON.

Question:
%s

Respond with a single JSON object using exactly these fields (omit fields that do not apply):
{
  "tiles": ["1m", ...],            // every tile in the hand including meld tiles and the winning tile
  "melds": [{"tiles": ["5z","5z","5z"], "is_open": true}],
  "win_tile": "8s",
  "dora_indicators": ["3m"],
  "is_riichi": false,
  "is_tsumo": true,
  "is_ippatsu": false,
  "is_rinshan": false,
  "is_chankan": false,
  "is_haitei": false,
  "is_houtei": false,
  "is_daburu_riichi": false,
  "is_tenhou": false,
  "is_chiihou": false,
  "player_wind": "east",           // east/south/west/north
  "round_wind": "east",
  "kyoutaku_number": 0,            // riichi sticks on the table
  "tsumi_number": 0                // honba count
}

Tile codes are rank+suit: 1m-9m, 1p-9p, 1s-9s, 1z-7z. Seat winds map as dealer=east,
second=south, third=west, fourth=north. Output only the JSON object.`

// judgePrompt asks whether the validated result satisfies its instruction.
const judgePrompt = `Evaluate whether the generated mahjong question follows its instruction.

Instruction: %s

Actual result:
- computed score: %d
- han: %d
- fu: %d
- yaku: %v

Judging criteria:
Check only the conditions the instruction states explicitly. Ignore anything the
instruction does not mention (score, han, fu, specific yaku) even if it looks unusual.

Examples:
- Instruction "create a hard problem with three concealed triplets" checks only the
  difficulty and whether the yaku list contains sanankou; score/han/fu are ignored.
- Instruction "create a tanyao plus sanshoku problem worth 5200 points" checks the
  yaku list for both and checks the score equals 5200; han and fu are ignored.

Answer "Yes" only when every stated condition holds, "No" when any single one fails.
Explain briefly.

Answer format:
Yes/No
Reason: (short explanation)`
